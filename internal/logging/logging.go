// Package logging builds the run logger: a *log.Logger writing to a
// size-rotated file, or to stderr when no file is given.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 10
	maxBackups = 4
	maxAgeDays = 180
)

// New returns a logger writing to path through lumberjack. With an empty
// path it writes to stderr when verbose, and discards output otherwise.
func New(path string, verbose bool) *log.Logger {
	var out io.Writer = io.Discard
	switch {
	case path != "":
		out = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		if verbose {
			out = io.MultiWriter(out, os.Stderr)
		}
	case verbose:
		out = os.Stderr
	}
	return log.New(out, "epid ", log.LstdFlags|log.Lmicroseconds)
}

// Close releases the rotating file behind l, if any.
func Close(l *log.Logger) error {
	if l == nil {
		return nil
	}
	if c, ok := l.Writer().(io.Closer); ok {
		return c.Close()
	}
	return nil
}
