package fastfifo

import "encoding/binary"

// lengthPrefixSize is the on-ring width of a frame's length prefix.
const lengthPrefixSize = 8

// MinFrame is the smallest possible byte cost of a complete frame: an
// 8-byte length prefix plus a 1-byte payload.
const MinFrame = lengthPrefixSize + 1

// putUint64 and getUint64 fix the on-ring length-prefix encoding as
// little-endian, resolving spec.md's open question about the original
// C library's native (platform-defined) representation.
func putUint64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
func getUint64(b []byte) uint64    { return binary.LittleEndian.Uint64(b) }

// ringWrite appends data to ring starting at tail, wrapping at the end of
// ring as needed, and returns the new tail and size. The caller must have
// already verified size+len(data) <= cap(ring); ringWrite performs no
// capacity check of its own, matching circular_buffer_write's precondition
// in the original C++ implementation.
func ringWrite(ring []byte, tail, size uint64, data []byte) (newTail, newSize uint64) {
	capacity := uint64(len(ring))
	n := uint64(len(data))

	if tail+n < capacity {
		copy(ring[tail:], data)
		newTail = tail + n
	} else {
		beforeWrap := capacity - tail
		afterWrap := n - beforeWrap
		copy(ring[tail:], data[:beforeWrap])
		copy(ring[:afterWrap], data[beforeWrap:])
		newTail = afterWrap
	}
	newSize = size + n

	assertInvariant(newSize <= capacity, "combined message size exceeds ring capacity")
	assertInvariant(newTail < capacity, "tail pointer points past the ring boundary")
	return newTail, newSize
}

// ringRead copies readSize bytes out of ring starting at head into dst,
// wrapping as needed. When pop is false the read is a peek: head and size
// are reported unchanged, and the caller is expected to ignore the
// returned values (they equal the inputs). When pop is true the read
// consumes the bytes: head advances and size shrinks by len(dst).
//
// The caller must have already verified size >= len(dst).
func ringRead(ring []byte, head, size uint64, dst []byte, pop bool) (newHead, newSize uint64) {
	capacity := uint64(len(ring))
	n := uint64(len(dst))

	var advancedHead uint64
	if head+n < capacity {
		copy(dst, ring[head:head+n])
		advancedHead = head + n
	} else {
		beforeWrap := capacity - head
		afterWrap := n - beforeWrap
		copy(dst[:beforeWrap], ring[head:])
		copy(dst[beforeWrap:], ring[:afterWrap])
		advancedHead = afterWrap
	}
	advancedSize := size - n

	assertInvariant(advancedHead < capacity, "ring head pointer is incorrect after read")
	assertInvariant(advancedSize <= capacity, "ring size is incorrect after read")

	if !pop {
		return head, size
	}
	return advancedHead, advancedSize
}
