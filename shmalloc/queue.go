package shmalloc

import (
	"unsafe"

	"github.com/alex-petrenko/faster-fifo/fastfifo"
)

// NewAnonymousQueue allocates a single memfd-backed segment sized for a
// fastfifo header plus a ringCapacity-byte ring, placement-constructs the
// header at the front of it, and returns a ready-to-use queue. The
// segment is only reachable by this process and the children it forks;
// the underlying fd is closed once the segment is mapped.
func NewAnonymousQueue(ringCapacity uint64) (*fastfifo.Queue, *Segment, error) {
	headerSize := uint64(fastfifo.HeaderByteSize())
	seg, err := CreateAnonymous(headerSize + ringCapacity)
	if err != nil {
		return nil, nil, err
	}
	return buildQueue(seg, headerSize), seg, nil
}

// CreateNamedQueue is the named-segment counterpart to NewAnonymousQueue:
// it creates /dev/shm/name sized for the header and ring and
// placement-constructs the header. Other processes should map the same
// name with OpenNamedQueue once this call returns.
func CreateNamedQueue(name string, ringCapacity uint64) (*fastfifo.Queue, *Segment, error) {
	headerSize := uint64(fastfifo.HeaderByteSize())
	seg, err := CreateNamed(name, headerSize+ringCapacity)
	if err != nil {
		return nil, nil, err
	}
	return buildQueue(seg, headerSize), seg, nil
}

// OpenNamedQueue maps an existing named segment created by
// CreateNamedQueue and wraps it as a Queue view over the header another
// process already constructed. Do not call this before the creator has
// constructed the header; doing so races the header's own memory writes.
func OpenNamedQueue(name string, ringCapacity uint64) (*fastfifo.Queue, *Segment, error) {
	headerSize := uint64(fastfifo.HeaderByteSize())
	seg, err := OpenNamed(name, headerSize+ringCapacity)
	if err != nil {
		return nil, nil, err
	}
	header := (*fastfifo.Header)(unsafe.Pointer(&seg.mem[0]))
	ring := seg.mem[headerSize:]
	return fastfifo.NewQueue(header, ring), seg, nil
}

func buildQueue(seg *Segment, headerSize uint64) *fastfifo.Queue {
	headerMem := unsafe.Pointer(&seg.mem[0])
	ring := seg.mem[headerSize:]
	return fastfifo.CreateQueue(headerMem, ring)
}
