package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options controls where a component logger writes.
type Options struct {
	// File, when set, receives log lines in append mode instead of stderr.
	File  string
	Level string
}

// New creates a component logger and returns it with a cleanup.
// stdout is reserved for the MCP stdio channel, so nothing is ever written there.
func New(component string, opts Options) (*logrus.Entry, func(), error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, err
		}
		level = parsed
	}
	logger.SetLevel(level)

	cleanup := func() {}
	var out io.Writer = os.Stderr
	if opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, err
			}
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		cleanup = func() { _ = f.Close() }
	}

	logger.SetOutput(out)
	return logger.WithField("component", component), cleanup, nil
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
