package style

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed palette.yaml
var defaultPaletteYAML []byte

// Palette maps semantic names to colors. Each color is a hex triplet or a
// symbolic 16-color name.
type Palette struct {
	Colors map[string]string `yaml:"colors"`
	States map[string]string `yaml:"states"`
	Events map[string]string `yaml:"events"`
	Files  map[string]string `yaml:"files"`
	Diff   map[string]string `yaml:"diff"`
}

var (
	defaultPalette     *Palette
	defaultPaletteOnce sync.Once
)

// DefaultPalette returns the built-in palette
func DefaultPalette() *Palette {
	defaultPaletteOnce.Do(func() {
		p, err := ParsePalette(defaultPaletteYAML)
		if err != nil {
			panic(fmt.Sprintf("failed to load built-in palette: %v", err))
		}
		defaultPalette = p
	})
	return defaultPalette
}

// ParsePalette parses a YAML palette
func ParsePalette(data []byte) (*Palette, error) {
	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse palette: %w", err)
	}
	return &p, nil
}

// LoadPaletteFile reads a YAML palette from disk and layers it over the
// built-in one, so a user file only needs the entries it changes
func LoadPaletteFile(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file %s: %w", path, err)
	}
	override, err := ParsePalette(data)
	if err != nil {
		return nil, err
	}
	return DefaultPalette().Merge(override), nil
}

// Merge returns a copy of p with every entry of other layered on top
func (p *Palette) Merge(other *Palette) *Palette {
	merged := &Palette{
		Colors: mergeColors(p.Colors, other.Colors),
		States: mergeColors(p.States, other.States),
		Events: mergeColors(p.Events, other.Events),
		Files:  mergeColors(p.Files, other.Files),
		Diff:   mergeColors(p.Diff, other.Diff),
	}
	return merged
}

func mergeColors(base, over map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Color returns a general semantic color, or "" when unknown
func (p *Palette) Color(name string) string {
	return p.Colors[name]
}

// State returns the color for an issue/milestone state
func (p *Palette) State(name string) string {
	return p.States[name]
}

// Event returns the color for an issue event type
func (p *Palette) Event(name string) string {
	return p.Events[name]
}

// File returns the color for a pull request file status
func (p *Palette) File(name string) string {
	return p.Files[name]
}

// DiffColor returns the color for a diff line class
func (p *Palette) DiffColor(name string) string {
	return p.Diff[name]
}
