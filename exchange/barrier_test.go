package exchange

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// No thread may pass the barrier of round r before all threads have arrived
// at it, over many reuse cycles.
func TestBarrierRounds(t *testing.T) {
	t.Parallel()
	const threads, rounds = 8, 200
	b := newBarrier(threads)
	var arrived atomic.Int64
	var stragglers atomic.Int64

	var eg errgroup.Group
	for i := 0; i < threads; i++ {
		eg.Go(func() error {
			for r := 0; r < rounds; r++ {
				arrived.Add(1)
				b.wait()
				if arrived.Load() < int64((r+1)*threads) {
					stragglers.Add(1)
				}
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	require.Zero(t, stragglers.Load())
	require.EqualValues(t, threads*rounds, arrived.Load())
}
