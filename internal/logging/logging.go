// Package logging builds the zerolog loggers. The TUI owns the terminal, so
// logs go to a file under the XDG state directory.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/tidwall/pretty"
)

// Formats accepted by Open.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// Options selects where and how to log.
type Options struct {
	Level  string
	Format string
	File   string // empty means $XDG_STATE_HOME/shloka/shloka.log
	Color  bool
}

// DefaultPath returns the log file location, creating its directory.
func DefaultPath() (string, error) {
	return xdg.StateFile("shloka/shloka.log")
}

// Open appends to the log file and returns a logger writing to it with a
// function that closes the file.
func Open(o Options) (zerolog.Logger, func() error, error) {
	path := o.File
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("log path: %w", err)
		}
		path = p
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log: %w", err)
	}
	logger, err := New(f, o)
	if err != nil {
		_ = f.Close()
		return zerolog.Nop(), nil, err
	}
	return logger, f.Close, nil
}

// New returns a timestamped logger writing to w.
func New(w io.Writer, o Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if o.Level != "" {
		l, err := zerolog.ParseLevel(o.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level: %w", err)
		}
		level = l
	}
	if o.Format == FormatPretty {
		w = prettyWriter{out: w, color: o.Color}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(level), nil
}

type prettyWriter struct {
	out   io.Writer
	color bool
}

func (p prettyWriter) Write(line []byte) (int, error) {
	out := pretty.Pretty(line)
	if p.color {
		out = pretty.Color(out, nil)
	}
	if n, err := p.out.Write(out); err != nil {
		return n, err
	}
	return len(line), nil
}

// Component returns a sub-logger tagged with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
