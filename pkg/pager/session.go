package pager

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"sync/atomic"
	"syscall"

	ghierrors "github.com/arthur-debert/ghi/pkg/errors"
	"github.com/arthur-debert/ghi/pkg/logging"
	"github.com/arthur-debert/ghi/pkg/terminal"
)

type sessionState int

const (
	inactive sessionState = iota
	active
	closing
)

func (s sessionState) String() string {
	switch s {
	case inactive:
		return "inactive"
	case active:
		return "active"
	case closing:
		return "closing"
	default:
		return "unknown"
	}
}

// session is one paging run. Without a pager process (cat) output still
// counts as paged but goes straight to the terminal.
type session struct {
	console *terminal.Console
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	out     *pipeWriter
	restore func()
	state   sessionState
}

func (p *Pager) start() (*session, error) {
	logger := logging.GetLogger("pager")
	command := p.Command()

	s := &session{console: p.console}

	var sink io.Writer = p.console.Stdout()
	if !isCat(command) {
		cmd := exec.Command(p.shell, "-c", command)
		cmd.Stdout = p.console.Stdout()
		cmd.Stderr = p.stderr

		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, ghierrors.Wrap(err, ghierrors.ErrPagerStart, "failed to open pager input").
				WithDetail("command", command)
		}
		if err := cmd.Start(); err != nil {
			return nil, ghierrors.Wrap(err, ghierrors.ErrPagerStart, "failed to start pager").
				WithDetail("command", command)
		}
		s.cmd = cmd
		s.stdin = stdin
		sink = stdin
	}

	s.out = &pipeWriter{w: sink}
	restore, err := p.console.Redirect(s.out)
	if err != nil {
		if s.stdin != nil {
			_ = s.stdin.Close()
			_ = s.cmd.Wait()
		}
		return nil, ghierrors.Wrap(err, ghierrors.ErrPagerStart, "failed to redirect output")
	}
	s.restore = restore
	s.state = active

	logger.Debug().
		Str("command", command).
		Bool("subprocess", s.cmd != nil).
		Msg("Paging session started")

	return s, nil
}

// close tears the session down. Only the first call has any effect.
func (s *session) close() error {
	if s.state != active {
		return nil
	}
	s.state = closing
	logger := logging.GetLogger("pager")

	var err error
	if s.cmd != nil {
		if cerr := s.stdin.Close(); cerr != nil && !isBrokenPipe(cerr) {
			err = ghierrors.Wrap(cerr, ghierrors.ErrPagerWrite, "failed to close pager input")
		}
		if werr := s.cmd.Wait(); werr != nil {
			// a pager quitting on its own terms is not our failure
			logger.Debug().Err(werr).Msg("Pager exited with an error")
		}
	}

	s.restore()
	if s.cmd != nil {
		_, _ = io.WriteString(s.console.Writer(), terminal.ShowCursor)
	}
	s.state = inactive

	logger.Debug().Str("state", s.state.String()).Msg("Paging session closed")
	return err
}

// pipeWriter remembers whether the reader went away
type pipeWriter struct {
	w      io.Writer
	closed atomic.Bool
}

func (pw *pipeWriter) Write(b []byte) (int, error) {
	n, err := pw.w.Write(b)
	if err != nil && isBrokenPipe(err) {
		pw.closed.Store(true)
	}
	return n, err
}

func (pw *pipeWriter) broken() bool {
	return pw.closed.Load()
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed)
}
