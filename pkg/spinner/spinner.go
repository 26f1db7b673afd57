// Package spinner draws an animated glyph while a slow operation runs.
//
// The animation runs on its own goroutine and owns its frame state. When the
// operation returns, fails or panics, a deferred cleanup stops the goroutine,
// waits for it to exit and then redraws the line and shows the cursor, so the
// reset is always the last thing written.
package spinner

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/arthur-debert/ghi/pkg/logging"
	"github.com/arthur-debert/ghi/pkg/terminal"
	"golang.org/x/sync/errgroup"
)

// DefaultInterval is the time between two frames
const DefaultInterval = 100 * time.Millisecond

// FrameSets are the animations one is picked from at random
var FrameSets = [][]string{
	{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	{"⠋", "⠙", "⠚", "⠞", "⠖", "⠦", "⠴", "⠲", "⠳", "⠓"},
	{"⠄", "⠆", "⠇", "⠋", "⠙", "⠸", "⠰", "⠠", "⠰", "⠸", "⠙", "⠋", "⠇", "⠆"},
	{"⠋", "⠙", "⠚", "⠒", "⠂", "⠂", "⠒", "⠲", "⠴", "⠦", "⠖", "⠒", "⠐", "⠐", "⠒", "⠓", "⠋"},
	{"⠁", "⠉", "⠙", "⠚", "⠒", "⠂", "⠂", "⠒", "⠲", "⠴", "⠤", "⠄", "⠄", "⠤", "⠴", "⠲", "⠒", "⠂", "⠂", "⠒", "⠚", "⠙", "⠉", "⠁"},
	{"⠈", "⠉", "⠋", "⠓", "⠒", "⠐", "⠐", "⠒", "⠖", "⠦", "⠤", "⠠", "⠠", "⠤", "⠦", "⠖", "⠒", "⠐", "⠐", "⠒", "⠓", "⠋", "⠉", "⠈"},
	{"⠁", "⠁", "⠉", "⠙", "⠚", "⠒", "⠂", "⠂", "⠒", "⠲", "⠴", "⠤", "⠄", "⠄", "⠤", "⠠", "⠠", "⠤", "⠦", "⠖", "⠒", "⠐", "⠐", "⠒", "⠓", "⠋", "⠉", "⠈", "⠈", "⠉"},
}

// Spinner animates on a console
type Spinner struct {
	console   *terminal.Console
	interval  time.Duration
	frameSets [][]string
	rng       *rand.Rand
}

// Option configures a Spinner
type Option func(*Spinner)

// WithInterval sets the time between frames
func WithInterval(d time.Duration) Option {
	return func(s *Spinner) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithFrameSets replaces the animations to pick from
func WithFrameSets(sets [][]string) Option {
	return func(s *Spinner) {
		if len(sets) > 0 {
			s.frameSets = sets
		}
	}
}

// WithRand makes frame choices come from rng
func WithRand(rng *rand.Rand) Option {
	return func(s *Spinner) {
		s.rng = rng
	}
}

// New creates a Spinner
func New(console *terminal.Console, opts ...Option) *Spinner {
	s := &Spinner{
		console:   console,
		interval:  DefaultInterval,
		frameSets: FrameSets,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled reports whether operations get animated. Output that is not laid
// out for a terminal never is.
func (s *Spinner) Enabled() bool {
	return s.console.Paginated()
}

// Run animates at column while op runs. reset is printed once op returns;
// empty means moving the cursor up one line.
func (s *Spinner) Run(column int, reset string, op func() error) error {
	_, err := Throb(s, column, reset, func() (struct{}, error) {
		return struct{}{}, op()
	})
	return err
}

// Throb animates at column while op runs and returns op's results. The
// cleanup runs on every exit path, including a panic in op.
func Throb[T any](s *Spinner, column int, reset string, op func() (T, error)) (T, error) {
	if !s.Enabled() {
		return op()
	}
	if reset == "" {
		reset = terminal.CursorUp(1)
	}

	w := s.console.Writer()
	st := s.newState()

	logger := logging.GetLogger("spinner")
	logger.Trace().
		Int("frames", len(st.frames)).
		Int("direction", st.direction).
		Msg("Spinner started")

	ctx, cancel := context.WithCancel(context.Background())
	var g errgroup.Group
	g.Go(func() error {
		animate(ctx, w, column, s.interval, st)
		return nil
	})

	defer func() {
		cancel()
		_ = g.Wait()
		_, _ = io.WriteString(w, "\r"+terminal.CursorColumn(column)+reset+terminal.ShowCursor+"\n")
	}()

	return op()
}

func animate(ctx context.Context, w io.Writer, column int, interval time.Duration, st *state) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prefix := "\r" + terminal.CursorColumn(column)
	for {
		if _, err := io.WriteString(w, prefix+st.frame()+terminal.HideCursor); err != nil {
			return
		}
		st.advance()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Spinner) intN(n int) int {
	if s.rng != nil {
		return s.rng.IntN(n)
	}
	return rand.IntN(n)
}
