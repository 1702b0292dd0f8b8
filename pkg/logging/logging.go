package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/samber/oops"
)

type ctxKey struct{}

func New(level string) *slog.Logger {
	return NewWithWriter(os.Stdout, level)
}

func NewWithWriter(w io.Writer, level string) *slog.Logger {
	lvl := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		lvl.Set(slog.LevelDebug)
	case "warn":
		lvl.Set(slog.LevelWarn)
	case "error":
		lvl.Set(slog.LevelError)
	default:
		lvl.Set(slog.LevelInfo)
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h)
}

func IntoContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func FromContext(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}

// Error logs err at error level, expanding oops code and context when present.
func Error(l *slog.Logger, msg string, err error, attrs ...any) {
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs = append(attrs, "error", oopsErr.Error())
		if code := oopsErr.Code(); code != nil {
			attrs = append(attrs, "code", code)
		}
		if c := oopsErr.Context(); len(c) > 0 {
			attrs = append(attrs, "context", c)
		}
		l.Error(msg, attrs...)
		return
	}
	l.Error(msg, append(attrs, "error", err)...)
}
