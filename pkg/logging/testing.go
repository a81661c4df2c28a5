package logging

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
)

// Testing returns a Logger that writes into the test log, at debug level.
func Testing(tb testing.TB) *Logger {
	return &Logger{
		Level: LevelDebug,
		Hijack: func(ctx context.Context, level Level, msg string, fields Fields) {
			tb.Helper()
			keys := make([]string, 0, len(fields))
			for k := range fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			var parts []string
			for _, k := range keys {
				parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
			}
			tb.Logf("[%s] %s %s", level, msg, strings.Join(parts, " "))
		},
	}
}
