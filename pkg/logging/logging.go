// Package logging builds the lager logger used by every autostop command.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager/v3"
)

// Values matching these key patterns are redacted from JSON log lines
var redactedKeys = []string{"[Pp]wd", "[Pp]ass", "[Ss]ecret", "[Tt]oken", "[Cc]redential"}

type Options struct {
	Level  string
	File   string    // Optional log file, appended to in human readable form
	Stdout io.Writer // Defaults to os.Stdout
	Sinks  []lager.Sink
}

// Logger is a lager logger with the files it writes to
type Logger struct {
	lager.Logger
	Level lager.LogLevel
	file  *os.File
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func ParseLevel(level string) (lager.LogLevel, error) {
	switch level {
	case "debug":
		return lager.DEBUG, nil
	case "info", "":
		return lager.INFO, nil
	case "error":
		return lager.ERROR, nil
	case "fatal":
		return lager.FATAL, nil
	default:
		return -1, fmt.Errorf("unsupported log level: %s", level)
	}
}

// New creates a logger named component writing JSON to stdout, and to the
// log file and extra sinks when configured
func New(component string, opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	redacted, err := lager.NewRedactingSink(lager.NewWriterSink(stdout, level), redactedKeys, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create redacted sink: %w", err)
	}

	logger := lager.NewLogger(component)
	logger.RegisterSink(redacted)

	l := &Logger{Logger: logger, Level: level}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("error creating log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("error opening log file %s: %w", opts.File, err)
		}
		l.file = f
		logger.RegisterSink(lager.NewPrettySink(f, level))
	}

	for _, sink := range opts.Sinks {
		logger.RegisterSink(sink)
	}
	return l, nil
}
