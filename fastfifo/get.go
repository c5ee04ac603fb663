package fastfifo

import "time"

// Get drains up to maxMessages whole messages from the ring into out,
// stopping early if out is too small for the next frame. maxBytes is
// checked before each frame: Get takes no further frame once bytesRead has
// reached maxBytes, but the last frame it takes may carry bytesRead past
// maxBytes.
//
// Returns the status, the number of messages actually copied into out,
// the number of bytes actually written into out, and the cumulative byte
// cost of every frame Get looked at this call (including, on
// StatusMsgBufferTooSmall, the one frame that didn't fit). On
// StatusSuccess, bytesRead == messagesSize. On StatusMsgBufferTooSmall
// with messagesRead == 0, the ring is left completely unchanged and
// messagesSize reports exactly what the next Get call needs out to be;
// the caller is expected to reissue with a larger buffer.
//
// If block is false, Get returns StatusEmpty immediately on an empty
// ring rather than waiting. If block is true, Get waits on the queue's
// not_empty condition for up to timeout before giving up.
func Get(h *Header, ring []byte, out []byte, maxMessages, maxBytes uint64, block bool, timeout time.Duration) (status Status, messagesRead, bytesRead, messagesSize uint64) {
	h.lock()
	defer h.unlock()

	remaining := clampRemaining(timeout)
	for {
		_, _, size, _ := h.state()
		if size > 0 {
			break
		}
		if !block || remaining <= 0 {
			return StatusEmpty, 0, 0, 0
		}

		deadline := time.Now().Add(remaining)
		h.waitNotEmpty(deadline)
		remaining = time.Until(deadline)
	}

	head, tail, size, count := h.state()
	status = StatusSuccess

	for messagesRead < maxMessages && bytesRead < maxBytes {
		var lenPrefix [lengthPrefixSize]byte
		ringRead(ring, head, size, lenPrefix[:], false)
		msgLen := getUint64(lenPrefix[:])
		frameCost := lengthPrefixSize + msgLen
		messagesSize += frameCost

		if uint64(len(out)) < messagesSize {
			status = StatusMsgBufferTooSmall
			break
		}

		assertInvariant(size >= frameCost, "ring size is less than the frame it reports")

		dst := out[bytesRead : bytesRead+frameCost]
		head, size = ringRead(ring, head, size, dst, true)
		bytesRead += frameCost
		messagesRead++
		count--

		if size == 0 {
			break
		}
	}
	h.setState(head, tail, size, count)

	switch {
	case messagesRead > 0 && h.notFullWaiters() > 0:
		h.signalNotFull()
	case size > 0 && h.notEmptyWaiters() > 0:
		// Many-consumer, one-batched-producer case: the producer's
		// single not_empty signal only guarantees waking one consumer.
		// Skipped when we already signalled not_full above, to avoid
		// unnecessary contention.
		h.signalNotEmpty()
	}

	return status, messagesRead, bytesRead, messagesSize
}
