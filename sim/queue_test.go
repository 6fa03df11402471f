package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFIFO_DequeueOrder(t *testing.T) {
	// GIVEN ids enqueued as [1, 2, 3]
	var q FIFO
	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)
	assert.Equal(t, "[1 2 3]", q.String())

	assert.Equal(t, 3, q.Len())

	// THEN ids leave in arrival order
	for _, want := range []int{1, 2, 3} {
		got, ok := q.Dequeue()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := q.Dequeue()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestPool_AcquireLowestFree(t *testing.T) {
	// GIVEN a pool of 3 with member 0 and 1 busy
	p := NewPool(3)
	i0, _ := p.Acquire()
	i1, _ := p.Acquire()
	assert.Equal(t, 0, i0)
	assert.Equal(t, 1, i1)

	// WHEN member 0 is released
	p.Release(0)

	// THEN the next acquire reuses it
	idx, ok := p.Acquire()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 2, p.Busy())
	assert.False(t, p.Full())
}

func TestPool_FullRejects(t *testing.T) {
	p := NewPool(1)
	p.Occupy(0)
	assert.True(t, p.Full())
	idx, ok := p.Acquire()
	assert.False(t, ok)
	assert.Equal(t, NoStation, idx)
	assert.True(t, p.IsBusy(0))
	assert.Equal(t, 1, p.Size())
}

func TestPool_DoubleReleasePanics(t *testing.T) {
	p := NewPool(2)
	assert.Panics(t, func() { p.Release(1) })
	p.Occupy(1)
	assert.Panics(t, func() { p.Occupy(1) })
}
