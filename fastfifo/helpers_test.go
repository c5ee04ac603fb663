package fastfifo

import "unsafe"

// newTestQueue allocates a fresh header and ring (both in normal Go heap
// memory — no cross-process sharing involved) and constructs a Queue over
// them, for tests that only need single-process semantics.
func newTestQueue(capacity uint64) *Queue {
	headerMem := make([]byte, HeaderByteSize())
	ring := make([]byte, capacity)
	return CreateQueue(unsafe.Pointer(&headerMem[0]), ring)
}
