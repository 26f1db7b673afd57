// Package logging sets up ghi's zerolog loggers. Human-readable output goes
// to stderr, since stdout may be a pager pipe, and every record is also
// appended to a log file under the XDG state directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Color modes for the console writer, matching ghi.color
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Options configures Setup
type Options struct {
	// Verbosity is the -v count: 0 warn, 1 info, 2 debug, 3+ trace
	Verbosity int
	// Stderr receives console output. Defaults to os.Stderr.
	Stderr io.Writer
	// Color is auto, always or never. auto colors a terminal unless
	// NO_COLOR is set.
	Color string
	// File overrides the log file path. "-" disables the file.
	File string
}

var (
	mu      sync.Mutex
	logFile *os.File
)

// SetupLogger configures the global logger for verbosity, writing to stderr
// and the default log file
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity})
}

// Setup configures the global logger. Calling it again replaces the previous
// configuration and closes the previous log file.
func Setup(opts Options) {
	zerolog.SetGlobalLevel(levelFor(opts.Verbosity))

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !colorize(opts.Color, stderr),
	}}

	path := opts.File
	if path == "" {
		path = getLogFilePath()
	}
	var fileErr error
	mu.Lock()
	closeLogFile()
	if path != "-" {
		logFile, fileErr = setupLogFile(path)
		if fileErr == nil {
			writers = append(writers, logFile)
		}
	}
	mu.Unlock()

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Failed to create log file, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", path).Msg("Logger initialized")
}

// Close closes the log file, if one is open
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLogFile()
}

func closeLogFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func levelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// colorize resolves a color mode for w
func colorize(mode string, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// getLogFilePath returns $XDG_STATE_HOME/ghi/ghi.log
func getLogFilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	if stateHome == "" {
		return "ghi.log"
	}
	return filepath.Join(stateHome, "ghi", "ghi.log")
}

func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// LogCommand logs a command execution with its arguments
func LogCommand(cmd string, args []string) {
	log.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
