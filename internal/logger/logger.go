// Package logger is the process-wide structured logger of the command-line
// tools. Library packages receive a *slog.Logger instead of importing it.
//
// Records go to stderr as slog text with a wall-clock time of day, which
// keeps batch output on stdout free of log lines.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// ErrLevel is wrapped by ParseLevel for unknown level names.
var ErrLevel = errors.New("logger: unknown level")

var (
	level   = new(slog.LevelVar)
	current atomic.Pointer[slog.Logger]
)

func init() { SetOutput(os.Stderr) }

// SetOutput redirects all subsequent records to w. Nil restores stderr.
// Loggers obtained earlier through With keep their writer.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level, ReplaceAttr: clock})
	current.Store(slog.New(h))
}

// clock shortens the time attribute to the time of day.
func clock(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		return slog.String(slog.TimeKey, a.Value.Time().Format("15:04:05.000"))
	}
	return a
}

// ParseLevel maps debug, info, warn (or warning) and error to a level.
// Matching ignores case and surrounding space; empty selects info.
func ParseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return slog.LevelInfo, nil
	case "warning":
		return slog.LevelWarn, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w %q", ErrLevel, s)
	}
	return l, nil
}

// SetLevel sets the minimum level by name. On error the level is unchanged.
func SetLevel(name string) error {
	l, err := ParseLevel(name)
	if err != nil {
		return err
	}
	level.Set(l)
	return nil
}

// Logger returns the active logger.
func Logger() *slog.Logger { return current.Load() }

// With returns the active logger with args attached to every record.
func With(args ...any) *slog.Logger { return Logger().With(args...) }

func Debugf(format string, v ...any) { Logger().Debug(fmt.Sprintf(format, v...)) }

func Infof(format string, v ...any) { Logger().Info(fmt.Sprintf(format, v...)) }

func Warnf(format string, v ...any) { Logger().Warn(fmt.Sprintf(format, v...)) }

func Errorf(format string, v ...any) { Logger().Error(fmt.Sprintf(format, v...)) }
