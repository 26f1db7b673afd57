// Package pager streams output through an external pager such as less.
//
// A session starts only when output goes to an interactive terminal, no
// session is already running and paging is enabled on the console. While it
// runs, the console writer is redirected into the pager's standard input.
// The session is torn down exactly once however Page returns: the pipe is
// closed, the pager waited for, the console restored and the cursor shown.
// A pager that quits early (broken pipe) ends the session successfully.
package pager

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/arthur-debert/ghi/pkg/logging"
	"github.com/arthur-debert/ghi/pkg/terminal"
)

const (
	// DefaultCommand is used when nothing else names a pager
	DefaultCommand = "less"
	// LessFlags keep colors raw and exit at end of input
	LessFlags = "-EKRX -b1"
)

var plainLess = regexp.MustCompile(`^less( -[EKRX]+)?$`)

// Lookup reads configuration values such as ghi.pager and core.pager
type Lookup interface {
	Get(key string) string
}

// Producer writes the next chunk of output. It reports done once there is
// nothing left to write.
type Producer func(w io.Writer) (done bool, err error)

// Pager runs paging sessions for a console
type Pager struct {
	console *terminal.Console
	config  Lookup
	getenv  func(string) string
	stderr  io.Writer
	shell   string
}

// Option configures a Pager
type Option func(*Pager)

// WithEnv replaces environment lookups (for $PAGER)
func WithEnv(getenv func(string) string) Option {
	return func(p *Pager) {
		p.getenv = getenv
	}
}

// WithStderr sets where the pager's standard error goes
func WithStderr(w io.Writer) Option {
	return func(p *Pager) {
		p.stderr = w
	}
}

// WithShell sets the shell used to run the pager command
func WithShell(shell string) Option {
	return func(p *Pager) {
		p.shell = shell
	}
}

// New creates a Pager. config may be nil.
func New(console *terminal.Console, config Lookup, opts ...Option) *Pager {
	p := &Pager{
		console: console,
		config:  config,
		getenv:  os.Getenv,
		stderr:  os.Stderr,
		shell:   "sh",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Command resolves the pager command: ghi.pager, then core.pager, then
// $PAGER, then less. A plain less invocation gets LessFlags appended.
func (p *Pager) Command() string {
	var command string
	if p.config != nil {
		command = p.config.Get("ghi.pager")
		if command == "" {
			command = p.config.Get("core.pager")
		}
	}
	if command == "" {
		command = p.getenv("PAGER")
	}
	if command == "" {
		command = DefaultCommand
	}
	if plainLess.MatchString(command) {
		command += " " + LessFlags
	}
	return command
}

// Applies reports whether Page would open a pager session
func (p *Pager) Applies() bool {
	return p.console.Interactive() && !p.console.Paging() && p.console.Paginate
}

// Page calls produce until it reports done, sleeping throttle between calls.
// When paging applies, output flows through the pager for the whole loop and
// header is written first. It returns nil when the pager is quit before
// output ends, produce's error when it fails, and ctx's error when ctx is
// cancelled.
func (p *Pager) Page(ctx context.Context, header string, throttle time.Duration, produce Producer) (err error) {
	logger := logging.GetLogger("pager")

	if p.Applies() {
		s, startErr := p.start()
		if startErr != nil {
			return startErr
		}
		defer func() {
			if closeErr := s.close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()

		if header != "" {
			if _, werr := fmt.Fprintln(p.console.Writer(), header); werr != nil {
				if s.out.broken() {
					return nil
				}
				return werr
			}
		}

		return loop(ctx, s.out, throttle, produce, s.out.broken)
	}

	logger.Trace().Msg("Paging does not apply, writing directly")
	return loop(ctx, p.console.Writer(), throttle, produce, func() bool { return false })
}

func loop(ctx context.Context, w io.Writer, throttle time.Duration, produce Producer, broken func() bool) error {
	for {
		done, err := produce(w)
		if broken() || (err != nil && isBrokenPipe(err)) {
			logger := logging.GetLogger("pager")
			logger.Debug().Msg("Pager closed its input, stopping")
			return nil
		}
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if err := sleep(ctx, throttle); err != nil {
			return err
		}
	}
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// isCat reports whether command would only copy its input to the terminal
func isCat(command string) bool {
	command = strings.TrimSpace(command)
	return command == "" || command == "cat"
}
