package fastfifo

import "time"

// splitDeadline decomposes an absolute wall-clock deadline into the
// (seconds, nanoseconds) pair the platform-specific timed-wait primitives
// expect. Used by header_linux.go (pthread_cond_timedwait); header_stub.go
// works from the deadline directly via time.Until.
func splitDeadline(deadline time.Time) (sec, nsec int64) {
	return deadline.Unix(), int64(deadline.Nanosecond())
}

// clampRemaining turns a possibly-negative remaining duration into the
// non-blocking case: a zero or negative remaining timeout behaves like a
// non-blocking call entering the wait loop, per spec.md §5.
func clampRemaining(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
