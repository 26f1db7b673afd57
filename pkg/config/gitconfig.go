package config

import (
	"bufio"
	"bytes"
	"errors"
	"os/exec"
	"strings"

	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/ghi/pkg/logging"
)

// gitSections are the git config sections read into the configuration
var gitSections = []string{"ghi.", "core.pager"}

// GitRunner returns the output of `git config --list`
type GitRunner func() ([]byte, error)

// ListGitConfig runs git to list its configuration
func ListGitConfig() ([]byte, error) {
	return exec.Command("git", "config", "--list").Output()
}

type gitProvider struct {
	run GitRunner
}

// GitProvider is a koanf provider over git configuration. Only the ghi
// section and core.pager are read. A missing git or a failing command
// yields no values.
func GitProvider(run GitRunner) koanf.Provider {
	return &gitProvider{run: run}
}

func (g *gitProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("git provider does not support ReadBytes")
}

func (g *gitProvider) Read() (map[string]interface{}, error) {
	out, err := g.run()
	if err != nil {
		logger := logging.GetLogger("config.git")
		logger.Debug().
			Err(err).
			Msg("git config unavailable")
		return map[string]interface{}{}, nil
	}
	return maps.Unflatten(ParseGitConfig(out), "."), nil
}

// ParseGitConfig parses `git config --list` output into flat keys. Later
// lines win, as they do in git.
func ParseGitConfig(out []byte) map[string]interface{} {
	values := make(map[string]interface{})
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if !wanted(key) {
			continue
		}
		values[key] = value
	}
	return values
}

func wanted(key string) bool {
	for _, section := range gitSections {
		if strings.HasPrefix(key, section) {
			return true
		}
	}
	return false
}
