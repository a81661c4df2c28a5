// Package testkit holds the shared fixtures of the module's tests.
package testkit

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"testing"
	"time"
)

// CancelledContext returns a context that is already cancelled.
func CancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

// GoroutineLeakDetector helps detect goroutine leaks in tests.
type GoroutineLeakDetector struct {
	initialCount int
	tb           testing.TB
}

func NewGoroutineLeakDetector(tb testing.TB) *GoroutineLeakDetector {
	return &GoroutineLeakDetector{
		initialCount: runtime.NumGoroutine(),
		tb:           tb,
	}
}

// Check verifies that no goroutines were leaked since creation.
func (g *GoroutineLeakDetector) Check() {
	g.CheckWithRetries(5)
}

// CheckWithRetries gives the stopping goroutines a few chances to exit before reporting a leak.
func (g *GoroutineLeakDetector) CheckWithRetries(retries int) {
	g.tb.Helper()
	var current int
	for i := 0; i < retries; i++ {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
		current = runtime.NumGoroutine()
		if current <= g.initialCount {
			return
		}
	}
	g.tb.Errorf("goroutine leak detected: started with %d goroutines, now have %d", g.initialCount, current)
}

var goroutinePrefix = []byte("goroutine ")

// GoroutineID returns the id of the calling goroutine, as printed in stack traces.
func GoroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, goroutinePrefix)
	if i := bytes.IndexByte(buf, ' '); 0 <= i {
		buf = buf[:i]
	}
	id, _ := strconv.ParseUint(string(buf), 10, 64)
	return id
}
