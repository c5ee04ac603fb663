// Package fastfifo implements a bounded, multi-producer/multi-consumer
// byte-framed FIFO queue designed to live in memory that may be shared
// between processes.
//
// A queue is two caller-supplied memory regions: a fixed-size header
// (allocate HeaderByteSize bytes and pass the pointer to Construct) and a
// ring of arbitrary byte capacity. The core never allocates either region
// itself — naming and mapping shared memory across processes is the
// caller's job (see package shmalloc for one way to do it).
//
// Producers enqueue batches of opaque messages with Put; consumers drain
// one or more whole messages per call with Get. Both calls can block with
// a timeout, or return immediately when the queue is full or empty. Get's
// three-tuple of out-parameters (messagesRead, bytesRead, messagesSize)
// lets a caller that guessed its output buffer size wrong retry exactly
// once with the exact size Get reports it needs.
package fastfifo
