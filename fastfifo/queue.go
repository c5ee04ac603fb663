package fastfifo

import (
	"time"
	"unsafe"
)

// Construct placement-constructs a Header into mem, which must point to
// at least HeaderByteSize() bytes, word-aligned. It must be called
// exactly once per queue, before any other operation, by exactly one of
// the participating processes; every other participant simply casts its
// own mapping of the same memory to *Header (see NewQueue).
func Construct(mem unsafe.Pointer, capacity uint64) *Header {
	return constructHeader(mem, capacity)
}

// Length returns the number of whole messages currently in the queue. It
// takes no lock: a best-effort read, per spec.md §4.4. Callers wanting a
// consistent snapshot must serialize externally.
func Length(h *Header) uint64 {
	_, _, _, count := h.state()
	return count
}

// IsFull reports whether the smallest possible frame (MinFrame bytes)
// could not currently fit, without taking a lock.
func IsFull(h *Header) bool {
	_, _, size, _ := h.state()
	return h.capacity()-size < MinFrame
}

// Queue bundles a constructed Header with its ring and offers an
// object-oriented wrapper over the free Put/Get functions, grouping the
// operations the way the teacher package's IPCQueue interface does.
type Queue struct {
	header *Header
	ring   []byte
}

// NewQueue wraps an already-constructed Header (constructed by this or
// any other participating process) and its ring.
func NewQueue(header *Header, ring []byte) *Queue {
	return &Queue{header: header, ring: ring}
}

// CreateQueue placement-constructs a new Header into headerMem and
// returns a Queue wrapping it and ring. Call this exactly once; other
// participants should map the same memory and use NewQueue instead.
func CreateQueue(headerMem unsafe.Pointer, ring []byte) *Queue {
	h := Construct(headerMem, uint64(len(ring)))
	return NewQueue(h, ring)
}

// Put enqueues a batch of messages. See the package-level Put for full
// semantics.
func (q *Queue) Put(msgs [][]byte, block bool, timeout time.Duration) Status {
	return Put(q.header, q.ring, msgs, block, timeout)
}

// PutOne enqueues a single message, a convenience wrapper over Put for
// the common one-message-at-a-time case (mirrors the original Python
// binding's single-message put()).
func (q *Queue) PutOne(msg []byte, block bool, timeout time.Duration) Status {
	return q.Put([][]byte{msg}, block, timeout)
}

// Get drains up to maxMessages messages into out. See the package-level
// Get for full semantics.
func (q *Queue) Get(out []byte, maxMessages, maxBytes uint64, block bool, timeout time.Duration) (status Status, messagesRead, bytesRead, messagesSize uint64) {
	return Get(q.header, q.ring, out, maxMessages, maxBytes, block, timeout)
}

// GetOne drains a single message into out, a convenience wrapper over Get
// for the common one-message-at-a-time case (mirrors the original
// Python binding's single-message get()). On StatusSuccess the returned
// slice is out sliced down to the frame's payload (the length prefix is
// stripped); on any other status the slice is nil.
func (q *Queue) GetOne(out []byte, block bool, timeout time.Duration) (status Status, payload []byte, messagesSize uint64) {
	status, _, bytesRead, messagesSize := q.Get(out, 1, uint64(len(out)), block, timeout)
	if status != StatusSuccess {
		return status, nil, messagesSize
	}
	return status, out[lengthPrefixSize:bytesRead], messagesSize
}

// Len returns the number of whole messages currently in the queue (see
// the package-level Length).
func (q *Queue) Len() uint64 { return Length(q.header) }

// IsFull reports whether the smallest possible frame could not currently
// fit (see the package-level IsFull).
func (q *Queue) IsFull() bool { return IsFull(q.header) }
