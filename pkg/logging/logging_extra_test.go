package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := log.Logger
	previousLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(previousLevel)
	})
	return &buf
}

func TestLogCommand(t *testing.T) {
	buf := captureLogs(t)

	LogCommand("show", []string{"issue", "issue.yaml"})

	output := buf.String()
	assert.Contains(t, output, "show")
	assert.Contains(t, output, "issue.yaml")
	assert.Contains(t, output, "Executing command")
}

func TestGetLoggerAddsComponent(t *testing.T) {
	buf := captureLogs(t)

	logger := GetLogger("pager")
	logger.Debug().Msg("spawned")

	assert.Contains(t, buf.String(), `"component":"pager"`)
}

func TestLogOperationStart(t *testing.T) {
	buf := captureLogs(t)

	done := LogOperationStart(GetLogger("cli"), "fetch")
	assert.Contains(t, buf.String(), "Operation started")

	done()
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "duration")
}
