package fastfifo

import (
	"bytes"
	"testing"
)

func TestRingWriteReadRoundTrip(t *testing.T) {
	ring := make([]byte, 32)
	data := []byte("hello, ring buffer")

	tail, size := ringWrite(ring, 0, 0, data)
	if size != uint64(len(data)) {
		t.Fatalf("size = %d, want %d", size, len(data))
	}

	out := make([]byte, len(data))
	head, newSize := ringRead(ring, 0, size, out, true)
	if !bytes.Equal(out, data) {
		t.Fatalf("read back %q, want %q", out, data)
	}
	if newSize != 0 {
		t.Fatalf("size after full read = %d, want 0", newSize)
	}
	if head != tail {
		t.Fatalf("head = %d, want %d (tail, ring now empty)", head, tail)
	}
}

func TestRingPeekLeavesStateUnchanged(t *testing.T) {
	ring := make([]byte, 32)
	data := []byte("peek me")
	_, size := ringWrite(ring, 0, 0, data)

	out := make([]byte, len(data))
	head, peekedSize := ringRead(ring, 0, size, out, false)
	if head != 0 || peekedSize != size {
		t.Fatalf("peek mutated state: head=%d size=%d, want head=0 size=%d", head, peekedSize, size)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("peek returned %q, want %q", out, data)
	}
}

func TestRingWriteWraps(t *testing.T) {
	// Capacity 10: write 7 bytes, read 7 (head=tail=7), then write 6
	// bytes, which must wrap: 3 before the wrap, 3 after.
	ring := make([]byte, 10)
	tail, size := ringWrite(ring, 0, 0, []byte("1234567"))
	head, size := ringRead(ring, 0, size, make([]byte, 7), true)
	if head != tail {
		t.Fatalf("head=%d tail=%d after full drain", head, tail)
	}

	wrapping := []byte("abcdef")
	newTail, newSize := ringWrite(ring, tail, size, wrapping)
	if newSize != uint64(len(wrapping)) {
		t.Fatalf("size = %d, want %d", newSize, len(wrapping))
	}
	// before_wrap = 10-7 = 3, after_wrap = 6-3 = 3, so new tail = 3.
	if newTail != 3 {
		t.Fatalf("tail = %d, want 3", newTail)
	}

	out := make([]byte, len(wrapping))
	_, finalSize := ringRead(ring, head, newSize, out, true)
	if !bytes.Equal(out, wrapping) {
		t.Fatalf("wrapped read = %q, want %q", out, wrapping)
	}
	if finalSize != 0 {
		t.Fatalf("size after drain = %d, want 0", finalSize)
	}
}

func TestRingReadWraps(t *testing.T) {
	ring := make([]byte, 10)
	// Fill 8 bytes, drain 8, leaving head=tail=8. Then write 5 bytes:
	// before_wrap = 10-8 = 2, after_wrap = 3, new tail = 3.
	tail, size := ringWrite(ring, 0, 0, []byte("12345678"))
	head, size := ringRead(ring, 0, size, make([]byte, 8), true)
	if head != tail || head != 8 {
		t.Fatalf("head=%d tail=%d, want both 8", head, tail)
	}

	data := []byte("WXYZ!")
	tail, size = ringWrite(ring, tail, size, data)
	if tail != 3 {
		t.Fatalf("tail = %d, want 3", tail)
	}

	out := make([]byte, len(data))
	newHead, newSize := ringRead(ring, head, size, out, true)
	if !bytes.Equal(out, data) {
		t.Fatalf("read = %q, want %q", out, data)
	}
	if newHead != tail || newSize != 0 {
		t.Fatalf("head=%d size=%d after drain, want head=%d size=0", newHead, newSize, tail)
	}
}
