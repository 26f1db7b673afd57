package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/ghi/pkg/layout"
	"github.com/arthur-debert/ghi/pkg/markdown"
	"github.com/arthur-debert/ghi/pkg/style"
	"github.com/arthur-debert/ghi/pkg/terminal"
	"github.com/arthur-debert/ghi/pkg/types"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRenderer(t *testing.T, columns int, profile termenv.Profile) *Renderer {
	t.Helper()
	console := terminal.NewWriter(&bytes.Buffer{},
		terminal.WithInteractive(true),
		terminal.WithProfile(profile),
		terminal.WithSizeFunc(func(int) (int, int, error) {
			return columns, 24, nil
		}),
	)
	theme := style.NewTheme(console)
	lay := layout.New(console, markdown.New(theme))

	r, err := New(theme, lay, WithUser("alice"), WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return r
}

func plainRenderer(t *testing.T) *Renderer {
	return newTestRenderer(t, 40, termenv.Ascii)
}

func TestDate(t *testing.T) {
	r := plainRenderer(t)

	tests := []struct {
		name   string
		at     time.Time
		suffix bool
		want   string
	}{
		{"minutes ago", now.Add(-30 * time.Minute), true, "30 minutes ago"},
		{"just now", now, true, "0 seconds ago"},
		{"one second", now.Add(-time.Second), true, "1 second ago"},
		{"future", now.Add(30 * time.Minute), true, "30 minutes from now"},
		{"one hour", now.Add(-time.Hour - 20*time.Minute), true, "1 hour ago"},
		{"days truncate", now.Add(-49 * time.Hour), true, "2 days ago"},
		{"one day ahead", now.Add(36 * time.Hour), true, "1 day from now"},
		{"without suffix", now.Add(-72 * time.Hour), false, "3 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Date(tt.at, tt.suffix))
		})
	}
}

func TestSmallFormatters(t *testing.T) {
	plain := plainRenderer(t)
	colored := newTestRenderer(t, 40, termenv.ANSI)

	assert.Equal(t, "you", plain.Username("alice"))
	assert.Equal(t, "bob", plain.Username("bob"))

	assert.Equal(t, "1 commit", plain.CountWithPlural(1, "commit"))
	assert.Equal(t, "0 commits", plain.CountWithPlural(0, "commit"))
	assert.Equal(t, "2 files", plain.CountWithPlural(2, "file"))

	assert.Equal(t, "[open]", plain.Tag("open"))
	assert.Equal(t, " open ", colored.Tag("open"))

	assert.Equal(t, "7 ", plain.Number("7"))
	assert.Equal(t, colored.theme.Bright("7")+":", colored.Number("7"))

	assert.Equal(t, colored.theme.Bg("511c7d", " merged "), colored.StateTag("merged"))
	assert.Equal(t, colored.theme.Fg("ff0000", "closed"), colored.EventType("closed"))
	assert.Equal(t, "labeled", colored.EventType("labeled"), "events without a color stay plain")
}

func TestEnumerativeConcat(t *testing.T) {
	assert.Equal(t, "", EnumerativeConcat(nil, "and"))
	assert.Equal(t, "a", EnumerativeConcat([]string{"a"}, "and"))
	assert.Equal(t, "a and b", EnumerativeConcat([]string{"a", "b"}, "and"))
	assert.Equal(t, "a, b and c", EnumerativeConcat([]string{"a", "b", "c"}, "and"))
}

func TestMentions(t *testing.T) {
	plain := plainRenderer(t)
	assert.Equal(t, "hi @alice", plain.Mentions("hi @alice"))

	r := newTestRenderer(t, 40, termenv.ANSI)
	want := "hi " + r.theme.Bright(r.theme.Fg("yellow", "@alice")) + " and " + r.theme.Bright("@bob")
	assert.Equal(t, want, r.Mentions("hi @alice and @bob"))
	assert.Equal(t, r.theme.Bright("@bob")+" first", r.Mentions("@bob first"))
	assert.Equal(t, "mail me@example.com", r.Mentions("mail me@example.com"))

	var out bytes.Buffer
	require.NoError(t, r.Println(&out, "@bob", "done"))
	assert.Equal(t, r.theme.Bright("@bob")+"\ndone\n", out.String())
}

func TestLabels(t *testing.T) {
	r := newTestRenderer(t, 40, termenv.ANSI)
	labels := []types.Label{{Name: "bug", Color: "ff0000"}, {Name: "ui", Color: "0000ff"}}

	assert.Equal(t, r.theme.Bg("ff0000", " bug ")+" "+r.theme.Bg("0000ff", " ui "), r.Labels(labels))
	assert.Equal(t, "", r.Labels(nil))
	assert.Equal(t, "[bug] [ui]", plainRenderer(t).Labels(labels))
}

func TestCommentOut(t *testing.T) {
	got := commentOut("\nfirst line  \nlonger second line\n\nend\n\n")
	assert.Equal(t, strings.Join([]string{
		"",
		"<!-- first line         -->",
		"<!-- longer second line -->",
		"<!--                    -->",
		"<!-- end                -->",
	}, "\n"), got)
}
