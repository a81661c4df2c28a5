// Package logging provides tooling for structured logging.
// With logging, you can use context to add logging details to your call stack.
package logging

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

type Logger struct {
	Out io.Writer

	MessageKey   string
	LevelKey     string
	TimestampKey string

	// Level is the logging level.
	// The default Level is LevelInfo.
	Level Level
	// Separator is used to separate log entries from each other.
	// By default, it is a new line.
	Separator string
	// MarshalFunc is used to serialise the logging message event.
	// When nil it defaults to JSON format.
	MarshalFunc func(any) ([]byte, error)
	// Hijack will hijack the logging and instead of letting it logged out to the Out,
	// the logging will be done with the Hijack function.
	// This is useful if you want to use your own choice of logging,
	// but also packages that use this logging package.
	Hijack HijackFunc
	// Now is used to timestamp log entries.
	// When nil, time.Now is used.
	Now func() time.Time

	outLock sync.Mutex
}

type HijackFunc func(ctx context.Context, level Level, msg string, fields Fields)

func (l *Logger) Debug(ctx context.Context, msg string, ds ...Detail) {
	l.Log(ctx, LevelDebug, msg, ds...)
}

func (l *Logger) Info(ctx context.Context, msg string, ds ...Detail) {
	l.Log(ctx, LevelInfo, msg, ds...)
}

func (l *Logger) Warn(ctx context.Context, msg string, ds ...Detail) {
	l.Log(ctx, LevelWarn, msg, ds...)
}

func (l *Logger) Error(ctx context.Context, msg string, ds ...Detail) {
	l.Log(ctx, LevelError, msg, ds...)
}

// Log writes a log entry at the given level.
// A nil *Logger discards every entry.
func (l *Logger) Log(ctx context.Context, level Level, msg string, ds ...Detail) {
	if l == nil {
		return
	}
	if !isLevelEnabled(l.Level, level) {
		return
	}
	fields := l.collect(ctx, ds)
	if l.Hijack != nil {
		l.Hijack(ctx, level, msg, fields)
		return
	}
	fields[l.getLevelKey()] = level
	fields[l.getMessageKey()] = msg
	fields[l.getTimestampKey()] = l.now().Format(time.RFC3339)
	_ = l.write(fields)
}

func (l *Logger) collect(ctx context.Context, ds []Detail) Fields {
	var fs = make(Fields)
	for _, d := range getLoggingDetailsFromContext(ctx) {
		d.addTo(fs)
	}
	for _, d := range ds {
		if d == nil {
			continue
		}
		d.addTo(fs)
	}
	return fs
}

func (l *Logger) write(fields Fields) error {
	bs, err := l.marshalFunc()(map[string]any(fields))
	if err != nil {
		return err
	}
	l.outLock.Lock()
	defer l.outLock.Unlock()
	_, err = l.writer().Write(append(bs, []byte(l.separator())...))
	return err
}

func (l *Logger) writer() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stdout
}

func (l *Logger) marshalFunc() func(any) ([]byte, error) {
	if l.MarshalFunc != nil {
		return l.MarshalFunc
	}
	return json.Marshal
}

func (l *Logger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Logger) getTimestampKey() string {
	return coalesce(l.TimestampKey, "timestamp")
}

func (l *Logger) getMessageKey() string {
	return coalesce(l.MessageKey, "message")
}

func (l *Logger) getLevelKey() string {
	return coalesce(l.LevelKey, "level")
}

func (l *Logger) separator() string {
	return coalesce(l.Separator, "\n")
}

func coalesce(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
