package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	ghierrors "github.com/arthur-debert/ghi/pkg/errors"
	"github.com/arthur-debert/ghi/pkg/logging"
)

// EnvPrefix prefixes environment variables that override configuration
const EnvPrefix = "GHI_"

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the effective configuration
type Config struct {
	Ghi  Ghi  `koanf:"ghi"`
	Core Core `koanf:"core"`

	// Sources lists where values were loaded from, lowest precedence first
	Sources []string `koanf:"-"`

	k *koanf.Koanf
}

// Ghi holds the settings of the ghi section
type Ghi struct {
	Pager     string        `koanf:"pager"`
	Paginate  bool          `koanf:"paginate"`
	Color     string        `koanf:"color"`
	User      string        `koanf:"user"`
	Throttle  time.Duration `koanf:"throttle"`
	Palette   string        `koanf:"palette"`
	Highlight Highlight     `koanf:"highlight"`
}

// Highlight configures Markdown highlighting
type Highlight struct {
	Style  string `koanf:"style"`
	Accent string `koanf:"accent"`
}

// Core holds the git settings ghi honors
type Core struct {
	Pager string `koanf:"pager"`
}

// Option configures Load
type Option func(*loader)

type loader struct {
	configDir string
	gitConfig GitRunner
	useGit    bool
	overrides map[string]interface{}
}

// WithConfigDir reads the user configuration from dir instead of
// $XDG_CONFIG_HOME/ghi
func WithConfigDir(dir string) Option {
	return func(l *loader) {
		l.configDir = dir
	}
}

// WithGitConfig replaces the command listing git configuration. A nil runner
// skips git configuration.
func WithGitConfig(run GitRunner) Option {
	return func(l *loader) {
		l.gitConfig = run
		l.useGit = run != nil
	}
}

// WithOverrides sets values, keyed like "ghi.color", that take precedence
// over every other source. Command line flags arrive this way.
func WithOverrides(values map[string]interface{}) Option {
	return func(l *loader) {
		if l.overrides == nil {
			l.overrides = make(map[string]interface{}, len(values))
		}
		for key, value := range values {
			l.overrides[key] = value
		}
	}
}

// DefaultConfigDir is where the user configuration lives
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "ghi")
}

// Load builds the configuration from, in increasing precedence: built-in
// defaults, git configuration, the user's config.toml and config.yaml, GHI_
// environment variables and overrides.
func Load(opts ...Option) (*Config, error) {
	log := logging.GetLogger("config")

	l := &loader{
		configDir: DefaultConfigDir(),
		gitConfig: ListGitConfig,
		useGit:    true,
	}
	for _, opt := range opts {
		opt(l)
	}

	k := koanf.New(".")
	var sources []string

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, ghierrors.Wrap(err, ghierrors.ErrConfigParse, "failed to load defaults")
	}
	sources = append(sources, "defaults")

	// 2. git config
	if l.useGit {
		if err := k.Load(GitProvider(l.gitConfig), nil); err != nil {
			return nil, ghierrors.Wrap(err, ghierrors.ErrConfigLoad, "failed to load git config")
		}
		sources = append(sources, "git config")
	}

	// 3. User files
	userFiles := []struct {
		name   string
		parser koanf.Parser
	}{
		{"config.toml", toml.Parser()},
		{"config.yaml", yaml.Parser()},
	}
	for _, uf := range userFiles {
		path := filepath.Join(l.configDir, uf.name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), uf.parser); err != nil {
			return nil, ghierrors.Wrapf(err, ghierrors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		sources = append(sources, path)
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), "_", ".")
	}), nil)
	if err != nil {
		return nil, ghierrors.Wrap(err, ghierrors.ErrConfigLoad, "failed to load environment")
	}
	sources = append(sources, "environment")

	// 5. Overrides
	if len(l.overrides) > 0 {
		if err := k.Load(confmap.Provider(l.overrides, "."), nil); err != nil {
			return nil, ghierrors.Wrap(err, ghierrors.ErrConfigLoad, "failed to apply overrides")
		}
		sources = append(sources, "flags")
	}

	cfg := &Config{k: k, Sources: sources}
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return nil, ghierrors.Wrap(err, ghierrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Strs("sources", sources).
		Str("color", cfg.Ghi.Color).
		Bool("paginate", cfg.Ghi.Paginate).
		Msg("Configuration loaded")

	return cfg, nil
}

func (c *Config) validate() error {
	c.Ghi.Color = strings.ToLower(strings.TrimSpace(c.Ghi.Color))
	switch c.Ghi.Color {
	case "":
		c.Ghi.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return ghierrors.Newf(ghierrors.ErrConfigParse, "ghi.color must be auto, always or never, not %q", c.Ghi.Color).
			WithDetail("key", "ghi.color")
	}
	if c.Ghi.Throttle < 0 {
		return ghierrors.New(ghierrors.ErrConfigParse, "ghi.throttle must not be negative").
			WithDetail("key", "ghi.throttle")
	}
	return nil
}

// Get returns a raw configuration value as a string, empty when unset
func (c *Config) Get(key string) string {
	if c == nil || c.k == nil {
		return ""
	}
	return c.k.String(key)
}

// TOML renders the effective configuration
func (c *Config) TOML() (string, error) {
	out, err := gotoml.Marshal(c.k.Raw())
	if err != nil {
		return "", ghierrors.Wrap(err, ghierrors.ErrInternal, "failed to render configuration")
	}
	return string(out), nil
}

// Default returns the built-in configuration, without git, files or
// environment
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	cfg := &Config{k: k, Sources: []string{"defaults"}}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}); err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	return cfg
}
