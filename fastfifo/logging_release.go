//go:build !fastfifo_debug

package fastfifo

import "log/slog"

// SetAssertLogger is a no-op outside debug builds; the signature is kept
// so caller code compiles unchanged across build tags.
func SetAssertLogger(l *slog.Logger) {}

// assertInvariant is a no-op in release builds. The compiler inlines and
// removes calls to this function, just as logger_release.go documents for
// its own no-op Debug/Info shims in the teacher package.
func assertInvariant(cond bool, msg string, args ...any) {}
