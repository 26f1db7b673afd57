package pager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/ghi/pkg/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLookup map[string]string

func (m mapLookup) Get(key string) string {
	return m[key]
}

func env(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func interactiveConsole(out io.Writer) *terminal.Console {
	return terminal.NewWriter(out, terminal.WithInteractive(true))
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name   string
		config mapLookup
		env    map[string]string
		want   string
	}{
		{"default less", nil, nil, "less -EKRX -b1"},
		{"PAGER plain less", nil, map[string]string{"PAGER": "less"}, "less -EKRX -b1"},
		{"PAGER less with known flags", nil, map[string]string{"PAGER": "less -R"}, "less -R -EKRX -b1"},
		{"PAGER less with other flags", nil, map[string]string{"PAGER": "less -S"}, "less -S"},
		{"PAGER other pager", nil, map[string]string{"PAGER": "most"}, "most"},
		{"core.pager over PAGER", mapLookup{"core.pager": "more"}, map[string]string{"PAGER": "most"}, "more"},
		{"ghi.pager over core.pager", mapLookup{"ghi.pager": "bat", "core.pager": "more"}, nil, "bat"},
		{"configured less", mapLookup{"ghi.pager": "less -X"}, nil, "less -X -EKRX -b1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lookup Lookup
			if tt.config != nil {
				lookup = tt.config
			}
			p := New(terminal.NewWriter(&bytes.Buffer{}), lookup, WithEnv(env(tt.env)))
			assert.Equal(t, tt.want, p.Command())
		})
	}
}

func TestPageNotInteractive(t *testing.T) {
	var out bytes.Buffer
	console := terminal.NewWriter(&out)
	p := New(console, mapLookup{"ghi.pager": "false"})

	calls := 0
	err := p.Page(context.Background(), "header", 0, func(w io.Writer) (bool, error) {
		calls++
		assert.False(t, console.Paging())
		fmt.Fprintf(w, "chunk %d\n", calls)
		return calls == 3, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, "chunk 1\nchunk 2\nchunk 3\n", out.String())
	assert.NotContains(t, out.String(), "\x1b[?25")
}

func TestPagePagingDisabled(t *testing.T) {
	var out bytes.Buffer
	console := interactiveConsole(&out)
	console.Paginate = false
	p := New(console, mapLookup{"ghi.pager": "false"})

	err := p.Page(context.Background(), "", 0, func(w io.Writer) (bool, error) {
		_, err := io.WriteString(w, "direct\n")
		return true, err
	})

	require.NoError(t, err)
	assert.Equal(t, "direct\n", out.String())
}

func TestPageProducerError(t *testing.T) {
	p := New(terminal.NewWriter(&bytes.Buffer{}), nil)
	boom := errors.New("boom")

	err := p.Page(context.Background(), "", 0, func(io.Writer) (bool, error) {
		return false, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestPageContextCancelled(t *testing.T) {
	p := New(terminal.NewWriter(&bytes.Buffer{}), nil)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := p.Page(ctx, "", time.Hour, func(io.Writer) (bool, error) {
		calls++
		cancel()
		return false, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPageThrottle(t *testing.T) {
	p := New(terminal.NewWriter(&bytes.Buffer{}), nil)

	start := time.Now()
	calls := 0
	err := p.Page(context.Background(), "", 20*time.Millisecond, func(io.Writer) (bool, error) {
		calls++
		return calls == 3, nil
	})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestPageThroughSubprocess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paged.txt")
	var out bytes.Buffer
	console := interactiveConsole(&out)
	p := New(console, mapLookup{"ghi.pager": fmt.Sprintf("cat > '%s'", path)})

	calls := 0
	err := p.Page(context.Background(), "# header", 0, func(w io.Writer) (bool, error) {
		calls++
		assert.True(t, console.Paging())
		assert.True(t, console.Paginated())
		assert.NotSame(t, &out, w)
		_, err := fmt.Fprintf(w, "line %d\n", calls)
		return calls == 3, err
	})
	require.NoError(t, err)

	paged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# header\nline 1\nline 2\nline 3\n", string(paged))

	assert.Equal(t, terminal.ShowCursor, out.String())
	assert.False(t, console.Paging())
	assert.Same(t, &out, console.Writer())
}

func TestPagePagerQuitsEarly(t *testing.T) {
	var out bytes.Buffer
	console := interactiveConsole(&out)
	p := New(console, mapLookup{"ghi.pager": "true"})

	chunk := strings.Repeat("x", 4096) + "\n"
	err := p.Page(context.Background(), "header", 0, func(w io.Writer) (bool, error) {
		_, err := io.WriteString(w, chunk)
		return false, err
	})

	require.NoError(t, err, "a closed pager is a normal end")
	assert.False(t, console.Paging())
	assert.True(t, strings.HasSuffix(out.String(), terminal.ShowCursor))
}

func TestPageCatWritesDirectly(t *testing.T) {
	var out bytes.Buffer
	console := interactiveConsole(&out)
	p := New(console, mapLookup{"ghi.pager": "cat"})

	err := p.Page(context.Background(), "header", 0, func(w io.Writer) (bool, error) {
		assert.True(t, console.Paging())
		_, err := io.WriteString(w, "body\n")
		return true, err
	})

	require.NoError(t, err)
	assert.Equal(t, "header\nbody\n", out.String())
	assert.False(t, console.Paging())
}

func TestPageAlreadyPaging(t *testing.T) {
	var out, outer bytes.Buffer
	console := interactiveConsole(&out)
	restore, err := console.Redirect(&outer)
	require.NoError(t, err)
	defer restore()

	p := New(console, mapLookup{"ghi.pager": "false"})
	err = p.Page(context.Background(), "header", 0, func(w io.Writer) (bool, error) {
		_, err := io.WriteString(w, "nested\n")
		return true, err
	})

	require.NoError(t, err)
	assert.Equal(t, "nested\n", outer.String())
	assert.Empty(t, out.String())
}

func TestPageCleanupOnPanic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paged.txt")
	var out bytes.Buffer
	console := interactiveConsole(&out)
	p := New(console, mapLookup{"ghi.pager": fmt.Sprintf("cat > '%s'", path)})

	assert.Panics(t, func() {
		_ = p.Page(context.Background(), "", 0, func(w io.Writer) (bool, error) {
			_, _ = io.WriteString(w, "partial\n")
			panic("producer failed")
		})
	})

	assert.False(t, console.Paging())
	assert.Equal(t, terminal.ShowCursor, out.String())

	paged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "partial\n", string(paged))
}

func TestPageStartFailure(t *testing.T) {
	console := interactiveConsole(&bytes.Buffer{})
	p := New(console, mapLookup{"ghi.pager": "less"}, WithShell(filepath.Join(t.TempDir(), "no-such-shell")))

	err := p.Page(context.Background(), "", 0, func(io.Writer) (bool, error) {
		t.Fatal("producer must not run")
		return true, nil
	})

	require.Error(t, err)
	assert.False(t, console.Paging())
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, isBrokenPipe(io.ErrClosedPipe))
	assert.True(t, isBrokenPipe(fmt.Errorf("write: %w", os.ErrClosed)))
	assert.False(t, isBrokenPipe(errors.New("other")))
}
