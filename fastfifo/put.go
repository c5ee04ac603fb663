package fastfifo

import "time"

// Put enqueues an ordered batch of messages atomically: either all of
// them land in the ring and count increases by len(msgs), or none do and
// Put returns StatusFull. The batch's total byte cost (including one
// 8-byte length prefix per message) is checked against the ring's free
// space before anything is written.
//
// If block is false, Put returns StatusFull immediately rather than
// waiting. If block is true, Put waits on the queue's not_full condition
// for up to timeout before giving up; timeout <= 0 with block true
// behaves like block false (spec.md §5).
func Put(h *Header, ring []byte, msgs [][]byte, block bool, timeout time.Duration) Status {
	total := uint64(len(msgs)) * lengthPrefixSize
	for _, m := range msgs {
		total += uint64(len(m))
	}

	h.lock()
	defer h.unlock()

	remaining := clampRemaining(timeout)
	for {
		_, _, size, _ := h.state()
		if size+total <= h.capacity() {
			break
		}
		if !block || remaining <= 0 {
			return StatusFull
		}

		// A consumer parked while there is data in the ring should be
		// woken so it can drain space for us.
		if h.notEmptyWaiters() > 0 {
			h.signalNotEmpty()
		}

		deadline := time.Now().Add(remaining)
		h.waitNotFull(deadline)
		remaining = time.Until(deadline)
	}

	head, tail, size, count := h.state()
	for _, msg := range msgs {
		var lenPrefix [lengthPrefixSize]byte
		putUint64(lenPrefix[:], uint64(len(msg)))

		tail, size = ringWrite(ring, tail, size, lenPrefix[:])
		tail, size = ringWrite(ring, tail, size, msg)
		count++
	}
	h.setState(head, tail, size, count)

	switch {
	case h.notEmptyWaiters() > 0:
		h.signalNotEmpty()
	case h.notFullWaiters() > 0 && h.capacity()-size >= MinFrame:
		// Many-producer, one-batched-consumer case: the consumer's
		// single not_full signal only guarantees waking one producer.
		// That producer must chain-signal the next one,
		// or the rest of the producers stall until the next drain.
		h.signalNotFull()
	}

	return StatusSuccess
}
