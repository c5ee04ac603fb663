package fastfifo

import (
	"bytes"
	"math/rand"
	"testing"
	"time"
)

// TestFrameIntegrityUnderWrap drives many small puts and gets against a
// tight ring so that most messages wrap, and checks that the concatenation
// of delivered payloads matches the concatenation of submitted payloads
// (spec.md §8 property 1 and 4).
func TestFrameIntegrityUnderWrap(t *testing.T) {
	q := newTestQueue(64)
	rng := rand.New(rand.NewSource(1))

	const rounds = 500
	var submitted, delivered bytes.Buffer

	out := make([]byte, 64)
	for i := 0; i < rounds; i++ {
		n := rng.Intn(20) + 1
		msg := make([]byte, n)
		rng.Read(msg)
		submitted.Write(msg)

		for {
			if st := q.PutOne(msg, false, 0); st == StatusSuccess {
				break
			}
			// Ring temporarily full: drain one message to make room,
			// then retry the put.
			drainOne(t, q, &delivered, out)
		}
	}

	for delivered.Len() < submitted.Len() {
		drainOne(t, q, &delivered, out)
	}

	if !bytes.Equal(submitted.Bytes(), delivered.Bytes()) {
		t.Fatalf("delivered payload stream does not match submitted stream")
	}
}

func drainOne(t *testing.T, q *Queue, delivered *bytes.Buffer, out []byte) {
	t.Helper()
	st, _, bytesRead, size := q.Get(out, 1, uint64(len(out)), true, time.Second)
	switch st {
	case StatusSuccess:
		delivered.Write(out[8:bytesRead])
	case StatusMsgBufferTooSmall:
		t.Fatalf("unexpected buffer-too-small: need %d, have %d", size, len(out))
	default:
		t.Fatalf("unexpected get status %v", st)
	}
}

// TestAtomicBatch checks spec.md §8 property 2: a batch either succeeds
// entirely (count += M) or fails entirely (count unchanged).
func TestAtomicBatch(t *testing.T) {
	q := newTestQueue(50)

	batch := [][]byte{make([]byte, 10), make([]byte, 10), make([]byte, 10)}
	before := q.Len()
	st := q.Put(batch, false, 0)
	if st != StatusFull {
		t.Fatalf("put 3x18 bytes into 50-byte ring = %v, want full (54 > 50)", st)
	}
	if after := q.Len(); after != before {
		t.Fatalf("count changed on a failed batch: %d -> %d", before, after)
	}

	small := [][]byte{make([]byte, 5), make([]byte, 5)}
	st = q.Put(small, false, 0)
	if st != StatusSuccess {
		t.Fatalf("put 2x13 bytes into 50-byte ring = %v, want success", st)
	}
	if after := q.Len(); after != before+2 {
		t.Fatalf("count = %d, want %d", after, before+2)
	}
}

// TestCapacityBound checks spec.md §8 property 3 holds across a mixed
// sequence of puts and gets.
func TestCapacityBound(t *testing.T) {
	q := newTestQueue(40)
	rng := rand.New(rand.NewSource(2))
	out := make([]byte, 40)

	for i := 0; i < 200; i++ {
		if rng.Intn(2) == 0 {
			msg := make([]byte, rng.Intn(10)+1)
			q.PutOne(msg, false, 0)
		} else {
			q.Get(out, 1, uint64(len(out)), false, 0)
		}

		_, _, size, _ := q.header.state()
		if size > q.header.capacity() {
			t.Fatalf("size %d exceeds capacity %d", size, q.header.capacity())
		}
	}
}

// TestOversizedPutTimesOutFull covers spec.md §7's note that a put whose
// total exceeds capacity can never succeed and must return FULL once its
// timeout elapses, rather than hanging forever.
func TestOversizedPutTimesOutFull(t *testing.T) {
	q := newTestQueue(20)
	start := time.Now()
	st := q.PutOne(make([]byte, 100), true, 150*time.Millisecond)
	if st != StatusFull {
		t.Fatalf("oversized put = %v, want full", st)
	}
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Fatalf("oversized put returned too early: %v", elapsed)
	}
}
