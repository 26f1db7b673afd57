// Package config loads ghi's settings with koanf.
//
// Sources are layered, each overriding the previous one:
//
//  1. built-in defaults (embedded/defaults.toml)
//  2. git configuration (`git config --list`, the ghi section and core.pager)
//  3. $XDG_CONFIG_HOME/ghi/config.toml and config.yaml
//  4. GHI_ environment variables (GHI_HIGHLIGHT_STYLE is ghi.highlight.style)
//
// The result is decoded into Config. Config.Get exposes raw keys, which is
// how the pager resolves ghi.pager and core.pager.
package config
