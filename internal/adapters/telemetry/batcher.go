// Package telemetry collects scan progress as OpenTelemetry spans and
// forwards it to a renderer.
package telemetry

import (
	"bytes"
	"sync"
	"time"

	"go.trai.ch/zerr"
)

const (
	// DefaultSizeLimit is the buffered byte count that forces a flush.
	DefaultSizeLimit = 4096
	// DefaultTimeLimit is the longest a chunk may sit in the buffer.
	DefaultTimeLimit = 50 * time.Millisecond
)

// Batcher coalesces span log writes until a size or time limit is reached,
// so renderers see a few larger chunks instead of one message per write. It
// is safe for concurrent use.
type Batcher struct {
	sizeLimit int
	timeLimit time.Duration
	emit      func([]byte)

	mu     sync.Mutex
	buffer *bytes.Buffer
	ticker *time.Ticker
	stopCh chan struct{}
	closed bool
}

// NewBatcher returns a running Batcher. Non-positive limits fall back to the
// defaults. emit must be fast; it is invoked with the buffer lock held to
// keep chunks ordered. Call Close to stop the background flusher.
func NewBatcher(sizeLimit int, timeLimit time.Duration, emit func([]byte)) *Batcher {
	if sizeLimit <= 0 {
		sizeLimit = DefaultSizeLimit
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}

	b := &Batcher{
		sizeLimit: sizeLimit,
		timeLimit: timeLimit,
		emit:      emit,
		buffer:    new(bytes.Buffer),
		stopCh:    make(chan struct{}),
	}

	b.ticker = time.NewTicker(timeLimit)
	go b.run()

	return b
}

// Write buffers p and flushes once the size limit is reached.
func (b *Batcher) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, zerr.New("batcher is closed")
	}

	n, err = b.buffer.Write(p)
	if err != nil {
		return n, err
	}

	if b.buffer.Len() >= b.sizeLimit {
		b.flushLocked()
		// A full buffer just flushed; restart the clock for the next chunk.
		b.ticker.Reset(b.timeLimit)
	}

	return n, nil
}

// Flush emits any buffered data immediately.
func (b *Batcher) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.flushLocked()
}

// Close stops the background flusher after a final flush. It is idempotent.
func (b *Batcher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	b.closed = true
	close(b.stopCh)
	b.flushLocked()
	return nil
}

func (b *Batcher) run() {
	for {
		select {
		case <-b.ticker.C:
			b.Flush()
		case <-b.stopCh:
			b.ticker.Stop()
			return
		}
	}
}

// flushLocked must be called with mu held. The emitted slice is a copy so
// the buffer can be reset right away.
func (b *Batcher) flushLocked() {
	if b.buffer.Len() == 0 {
		return
	}

	data := make([]byte, b.buffer.Len())
	copy(data, b.buffer.Bytes())
	b.buffer.Reset()

	if b.emit != nil {
		b.emit(data)
	}
}
