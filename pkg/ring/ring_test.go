package ring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing_PushPopFIFO(t *testing.T) {
	r := New[int](4)
	r.Push(1)
	r.Push(2)
	r.Push(3)

	v, ok := r.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = r.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestRing_PopEmpty(t *testing.T) {
	r := New[int](4)
	_, ok := r.Pop()
	assert.False(t, ok)
}

func TestRing_CapacityRoundsUpToPowerOfTwo(t *testing.T) {
	r := New[int](5)
	assert.Equal(t, uint64(7), r.mask) // rounds to 8
}

func TestRing_OverflowDropsNewestAndCounts(t *testing.T) {
	r := New[int](2) // capacity rounds to 2
	r.Push(1)
	r.Push(2)
	r.Push(3) // dropped: ring full

	assert.Equal(t, uint64(1), r.Overflow())

	v, ok := r.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = r.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)
	_, ok = r.Pop()
	assert.False(t, ok)
}

func TestRing_LenTracksOccupancy(t *testing.T) {
	r := New[int](8)
	assert.Equal(t, 0, r.Len())
	r.Push(1)
	r.Push(2)
	assert.Equal(t, 2, r.Len())
	r.Pop()
	assert.Equal(t, 1, r.Len())
}

func TestRing_ConcurrentSingleProducerSingleConsumer(t *testing.T) {
	r := New[int](16)
	const n = 10000

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			for {
				before := r.Overflow()
				r.Push(i)
				if r.Overflow() == before {
					break
				}
			}
		}
	}()

	received := make([]int, 0, n)
	go func() {
		defer wg.Done()
		for len(received) < n {
			if v, ok := r.Pop(); ok {
				received = append(received, v)
			}
		}
	}()

	wg.Wait()
	for i, v := range received {
		assert.Equal(t, i, v)
	}
}
