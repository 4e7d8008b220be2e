package utils

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// OrderedWriter collects output from concurrent workers into numbered slots
// and writes it to the destination in slot order. Each slot is flushed as
// soon as it and every slot before it are done, so output streams while
// preserving input order. Safe for concurrent use.
type OrderedWriter struct {
	mu    sync.Mutex
	dst   io.Writer
	bufs  []bytes.Buffer
	done  []bool
	next  int
	first error
}

// NewOrderedWriter returns a writer with n slots flushing to dst.
func NewOrderedWriter(dst io.Writer, n int) *OrderedWriter {
	return &OrderedWriter{
		dst:  dst,
		bufs: make([]bytes.Buffer, n),
		done: make([]bool, n),
	}
}

// Slot returns the writer for slot i.
func (o *OrderedWriter) Slot(i int) io.Writer {
	return slotWriter{o: o, i: i}
}

// Done marks slot i complete and flushes every contiguous completed slot.
// It returns the first error encountered writing to the destination.
func (o *OrderedWriter) Done(i int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if i < 0 || i >= len(o.done) {
		return fmt.Errorf("slot %d out of range", i)
	}
	o.done[i] = true

	for o.next < len(o.done) && o.done[o.next] {
		if o.first == nil && o.bufs[o.next].Len() > 0 {
			if _, err := o.bufs[o.next].WriteTo(o.dst); err != nil {
				o.first = err
			}
		}
		o.bufs[o.next].Reset()
		o.next++
	}
	return o.first
}

type slotWriter struct {
	o *OrderedWriter
	i int
}

func (s slotWriter) Write(p []byte) (int, error) {
	s.o.mu.Lock()
	defer s.o.mu.Unlock()

	if s.i < 0 || s.i >= len(s.o.bufs) {
		return 0, fmt.Errorf("slot %d out of range", s.i)
	}
	if s.o.done[s.i] {
		return 0, fmt.Errorf("slot %d already done", s.i)
	}
	return s.o.bufs[s.i].Write(p)
}
