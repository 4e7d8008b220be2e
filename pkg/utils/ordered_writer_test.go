package utils

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedWriter_FlushesInOrder(t *testing.T) {
	var out bytes.Buffer
	o := NewOrderedWriter(&out, 3)

	_, _ = fmt.Fprint(o.Slot(2), "c")
	_, _ = fmt.Fprint(o.Slot(1), "b")
	require.NoError(t, o.Done(2))
	require.NoError(t, o.Done(1))
	assert.Empty(t, out.String(), "slot 0 still pending")

	_, _ = fmt.Fprint(o.Slot(0), "a")
	require.NoError(t, o.Done(0))
	assert.Equal(t, "abc", out.String())
}

func TestOrderedWriter_StreamsPrefix(t *testing.T) {
	var out bytes.Buffer
	o := NewOrderedWriter(&out, 2)

	_, _ = fmt.Fprint(o.Slot(0), "first")
	require.NoError(t, o.Done(0))
	assert.Equal(t, "first", out.String())

	_, err := o.Slot(0).Write([]byte("late"))
	require.Error(t, err)
}

func TestOrderedWriter_Concurrent(t *testing.T) {
	var out bytes.Buffer
	const n = 50
	o := NewOrderedWriter(&out, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = fmt.Fprintf(o.Slot(i), "%02d,", i)
			_ = o.Done(i)
		}(i)
	}
	wg.Wait()

	var want bytes.Buffer
	for i := 0; i < n; i++ {
		fmt.Fprintf(&want, "%02d,", i)
	}
	assert.Equal(t, want.String(), out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestOrderedWriter_DestinationError(t *testing.T) {
	o := NewOrderedWriter(failingWriter{}, 2)

	_, _ = fmt.Fprint(o.Slot(0), "x")
	require.Error(t, o.Done(0))
	require.Error(t, o.Done(1), "first error is sticky")

	require.Error(t, o.Done(5))
}
