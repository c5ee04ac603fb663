//go:build fastfifo_debug

package fastfifo

import (
	"fmt"
	"log/slog"
	"os"
)

var assertLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// SetAssertLogger overrides the logger used by failed invariant checks in
// debug builds. It has no effect in a non-debug build.
func SetAssertLogger(l *slog.Logger) {
	assertLogger = l
}

// assertInvariant logs and panics when cond is false. It exists only in
// builds tagged fastfifo_debug; the release build below compiles it to a
// no-op the compiler can inline away, mirroring the original C++ library's
// LOG_ASSERT macro (log to stderr, then assert).
func assertInvariant(cond bool, msg string, args ...any) {
	if cond {
		return
	}
	assertLogger.Error(msg, args...)
	panic(fmt.Sprintf("fastfifo: invariant violated: %s", msg))
}
