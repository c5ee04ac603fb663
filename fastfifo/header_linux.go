//go:build linux

package fastfifo

/*
#cgo LDFLAGS: -lpthread
#define _GNU_SOURCE
#include <pthread.h>
#include <stdint.h>
#include <string.h>
#include <errno.h>

// ff_header mirrors the original C++ library's Queue struct, minus the
// ring buffer itself (the ring is a separate caller-supplied region,
// passed to Put/Get directly, exactly as in faster_fifo.cpp).
typedef struct {
    uint64_t capacity;
    uint64_t head;
    uint64_t tail;
    uint64_t size;
    uint64_t count;

    pthread_mutex_t mutex;

    pthread_cond_t  not_empty;
    int32_t         not_empty_waiters;
    pthread_cond_t  not_full;
    int32_t         not_full_waiters;
} ff_header;

// ff_header_init placement-constructs h: a process-shared mutex and two
// process-shared condition variables, paired with that mutex. Returns 0 on
// success, -1 on failure; the pthread error code is not passed on.
static int ff_header_init(ff_header *h, uint64_t capacity) {
    memset(h, 0, sizeof(*h));
    h->capacity = capacity;

    pthread_mutexattr_t mattr;
    if (pthread_mutexattr_init(&mattr) != 0) return -1;
    if (pthread_mutexattr_setpshared(&mattr, PTHREAD_PROCESS_SHARED) != 0) {
        pthread_mutexattr_destroy(&mattr);
        return -1;
    }
    int rc = pthread_mutex_init(&h->mutex, &mattr);
    pthread_mutexattr_destroy(&mattr);
    if (rc != 0) return -1;

    pthread_condattr_t cattr;
    if (pthread_condattr_init(&cattr) != 0) return -1;
    if (pthread_condattr_setpshared(&cattr, PTHREAD_PROCESS_SHARED) != 0) {
        pthread_condattr_destroy(&cattr);
        return -1;
    }

    rc = pthread_cond_init(&h->not_empty, &cattr);
    if (rc != 0) { pthread_condattr_destroy(&cattr); return -1; }
    rc = pthread_cond_init(&h->not_full, &cattr);
    pthread_condattr_destroy(&cattr);
    if (rc != 0) return -1;

    return 0;
}

static void ff_lock(ff_header *h)   { pthread_mutex_lock(&h->mutex); }
static void ff_unlock(ff_header *h) { pthread_mutex_unlock(&h->mutex); }

static void ff_signal_not_empty(ff_header *h) { pthread_cond_signal(&h->not_empty); }
static void ff_signal_not_full(ff_header *h)  { pthread_cond_signal(&h->not_full); }

// ff_wait_not_empty/ff_wait_not_full wait on their respective condition
// variable with an absolute CLOCK_REALTIME deadline (seconds +
// nanoseconds), incrementing and decrementing the matching waiter count
// while the wait is in flight, same as the original's wait() helper.
static void ff_wait_not_empty(ff_header *h, int64_t deadline_sec, int64_t deadline_nsec) {
    struct timespec ts;
    ts.tv_sec = (time_t)deadline_sec;
    ts.tv_nsec = (long)deadline_nsec;

    h->not_empty_waiters++;
    pthread_cond_timedwait(&h->not_empty, &h->mutex, &ts);
    h->not_empty_waiters--;
}

static void ff_wait_not_full(ff_header *h, int64_t deadline_sec, int64_t deadline_nsec) {
    struct timespec ts;
    ts.tv_sec = (time_t)deadline_sec;
    ts.tv_nsec = (long)deadline_nsec;

    h->not_full_waiters++;
    pthread_cond_timedwait(&h->not_full, &h->mutex, &ts);
    h->not_full_waiters--;
}
*/
import "C"

import (
	"time"
	"unsafe"
)

// Header is the process-shared control block for a queue: ring
// bookkeeping (head/tail/size/count), a process-shared mutex, and two
// process-shared condition variables with waiter counts. It must be
// placement-constructed with Construct into memory that every
// participating process maps at an address where the embedded pthread
// primitives stay word-aligned (see HeaderByteSize).
//
// The mutex is not robust: if a process dies while holding it, every
// other participant wedges forever. This module does not opt into crash
// recovery (spec.md's open question on the subject); that's a caller
// concern if it matters for a given deployment.
type Header struct {
	c C.ff_header
}

// HeaderByteSize returns the number of bytes the caller must allocate —
// typically in shared memory — before calling Construct.
func HeaderByteSize() uintptr {
	return uintptr(unsafe.Sizeof(C.ff_header{}))
}

// constructHeader placement-constructs a Header into mem, which must be
// at least HeaderByteSize() bytes and word-aligned.
func constructHeader(mem unsafe.Pointer, capacity uint64) *Header {
	h := (*Header)(mem)
	if C.ff_header_init(&h.c, C.uint64_t(capacity)) != 0 {
		panic("fastfifo: failed to initialize process-shared mutex/condvars")
	}
	return h
}

func (h *Header) lock()   { C.ff_lock(&h.c) }
func (h *Header) unlock() { C.ff_unlock(&h.c) }

func (h *Header) signalNotEmpty() { C.ff_signal_not_empty(&h.c) }
func (h *Header) signalNotFull()  { C.ff_signal_not_full(&h.c) }

func (h *Header) notEmptyWaiters() int32 { return int32(h.c.not_empty_waiters) }
func (h *Header) notFullWaiters() int32  { return int32(h.c.not_full_waiters) }

// waitNotEmpty/waitNotFull wait on the matching condition variable until
// either signaled or the absolute deadline passes. Spurious wakeups are
// expected and handled by the outer while-loops in Put/Get, not here.
func (h *Header) waitNotEmpty(deadline time.Time) {
	sec, nsec := splitDeadline(deadline)
	C.ff_wait_not_empty(&h.c, C.int64_t(sec), C.int64_t(nsec))
}

func (h *Header) waitNotFull(deadline time.Time) {
	sec, nsec := splitDeadline(deadline)
	C.ff_wait_not_full(&h.c, C.int64_t(sec), C.int64_t(nsec))
}

// capacity returns the immutable ring byte capacity.
func (h *Header) capacity() uint64 { return uint64(h.c.capacity) }

// state returns the current head/tail/size/count bookkeeping fields.
// Callers must hold the mutex, except for the best-effort readers Length
// and IsFull which tolerate a torn read per spec.md §4.4.
func (h *Header) state() (head, tail, size, count uint64) {
	return uint64(h.c.head), uint64(h.c.tail), uint64(h.c.size), uint64(h.c.count)
}

func (h *Header) setState(head, tail, size, count uint64) {
	h.c.head = C.uint64_t(head)
	h.c.tail = C.uint64_t(tail)
	h.c.size = C.uint64_t(size)
	h.c.count = C.uint64_t(count)
}
