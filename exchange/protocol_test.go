package exchange_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"github.com/neurogrid/go-neurogrid/common/types"
	"github.com/neurogrid/go-neurogrid/exchange"
	"github.com/neurogrid/go-neurogrid/register"
	"github.com/neurogrid/go-neurogrid/targets"
	"github.com/neurogrid/go-neurogrid/transport"
)

type fakeClock struct {
	step types.Step
	from types.Step
	min  int64
	max  int64
}

func (c *fakeClock) CurrentStep() types.Step { return c.step }
func (c *fakeClock) FromStep() types.Step    { return c.from }
func (c *fakeClock) MinDelay() int64         { return c.min }
func (c *fakeClock) MaxDelay() int64         { return c.max }

type delivery struct {
	rec   exchange.SpikeRecord
	stamp types.Step
}

// captureSink records deliveries per destination thread, in arrival order.
type captureSink struct {
	mu    sync.Mutex
	byTid map[int][]delivery
}

func newCaptureSink() *captureSink {
	return &captureSink{byTid: map[int][]delivery{}}
}

func (s *captureSink) DeliverSpike(tid int, rec exchange.SpikeRecord, stamp types.Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byTid[tid] = append(s.byTid[tid], delivery{rec: rec, stamp: stamp})
	return nil
}

func (s *captureSink) deliveries(tid int) []delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byTid[tid]
}

func (s *captureSink) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, d := range s.byTid {
		n += len(d)
	}
	return n
}

type clusterRank struct {
	mgr      *exchange.Manager
	spikes   *register.Store[exchange.SpikeRecord]
	registry *targets.Registry
	table    *targets.Table
	sink     *captureSink
	clock    *fakeClock
}

type cluster struct {
	ranks   []*clusterRank
	threads int
}

func newCluster(t *testing.T, ranks, threads int, minDelay, maxDelay int64, segmentSlots int) *cluster {
	t.Helper()
	eps := transport.NewGroup(ranks)
	c := &cluster{threads: threads}
	for r := 0; r < ranks; r++ {
		clock := &fakeClock{min: minDelay, max: maxDelay}
		resolver := targets.NewModuloResolver(types.Rank(r), ranks)
		cr := &clusterRank{
			spikes:   register.New[exchange.SpikeRecord](threads),
			registry: targets.NewRegistry(threads, resolver),
			table:    targets.NewTable(threads),
			sink:     newCaptureSink(),
			clock:    clock,
		}
		cr.mgr = exchange.New(eps[r], clock, resolver, cr.spikes, cr.registry, cr.sink, cr.table,
			exchange.WithLogger(zaptest.NewLogger(t).Named(fmt.Sprintf("rank-%d", r))),
			exchange.WithConfig(exchange.Config{Threads: threads, SegmentSlots: segmentSlots}),
		)
		require.NoError(t, cr.mgr.Configure())
		c.ranks = append(c.ranks, cr)
	}
	return c
}

// gatherSpikes runs one spike gather on every rank and thread concurrently.
func (c *cluster) gatherSpikes() error {
	var eg errgroup.Group
	for _, cr := range c.ranks {
		for tid := 0; tid < c.threads; tid++ {
			eg.Go(func() error {
				return cr.mgr.GatherSpikeData(tid)
			})
		}
	}
	return eg.Wait()
}

func (c *cluster) gatherTargets(ctx context.Context) error {
	var eg errgroup.Group
	for _, cr := range c.ranks {
		eg.Go(func() error {
			return cr.mgr.GatherTargetData(ctx)
		})
	}
	return eg.Wait()
}

// A slice without any spikes terminates after exactly one round on every
// rank and delivers nothing.
func TestSpikeGatherNoSpikes(t *testing.T) {
	t.Parallel()
	c := newCluster(t, 4, 2, 2, 4, 0)
	require.NoError(t, c.gatherSpikes())
	for r, cr := range c.ranks {
		require.Equal(t, 1, cr.mgr.SpikeRounds(), "rank %d", r)
		require.Zero(t, cr.sink.total(), "rank %d", r)
	}
}

// Five records into a four-slot segment: the gather takes one extra round
// for the spilled record plus one empty round to conclude, and the receiver
// sees every record exactly once, in production order.
func TestSpikeGatherSegmentSpill(t *testing.T) {
	t.Parallel()
	c := newCluster(t, 4, 2, 2, 4, 4)
	for i := 0; i < 5; i++ {
		c.ranks[0].spikes.Append(0, 2, exchange.SpikeRecord{
			Tid: 1, SynIndex: 0, Lcid: uint32(i), Lag: 1,
		})
	}
	require.NoError(t, c.gatherSpikes())

	for r, cr := range c.ranks {
		require.Equal(t, 3, cr.mgr.SpikeRounds(), "rank %d", r)
	}
	got := c.ranks[2].sink.deliveries(1)
	require.Len(t, got, 5)
	for i, d := range got {
		require.Equal(t, uint32(i), d.rec.Lcid)
		require.Equal(t, exchange.StateData, d.rec.State)
		require.EqualValues(t, 2, d.stamp) // step 0, lag 1, effect at lag+1
	}
	require.Zero(t, c.ranks[2].sink.total()-len(got))
	for _, r := range []int{0, 1, 3} {
		require.Zero(t, c.ranks[r].sink.total(), "rank %d", r)
	}
}

// Single-slot segments force a reject on nearly every round; nothing may be
// lost, duplicated or reordered within a producer stream.
func TestSpikeGatherNoLossUnderPressure(t *testing.T) {
	t.Parallel()
	const ranks, threads, perStream = 3, 2, 7
	c := newCluster(t, ranks, threads, 2, 4, 1)
	for r, cr := range c.ranks {
		for p := 0; p < threads; p++ {
			stream := uint32(r*threads + p)
			for seq := 0; seq < perStream; seq++ {
				for dst := 0; dst < ranks; dst++ {
					cr.spikes.Append(p, dst, exchange.SpikeRecord{
						Tid:      uint32(p),
						SynIndex: stream,
						Lcid:     uint32(seq),
						Lag:      uint32(seq % 2),
					})
				}
			}
		}
	}
	require.NoError(t, c.gatherSpikes())

	for dst, cr := range c.ranks {
		for tid := 0; tid < threads; tid++ {
			got := cr.sink.deliveries(tid)
			// one stream per source rank targets this thread
			require.Len(t, got, ranks*perStream, "rank %d tid %d", dst, tid)
			seqs := map[uint32][]uint32{}
			for _, d := range got {
				require.EqualValues(t, tid, d.rec.Tid)
				seqs[d.rec.SynIndex] = append(seqs[d.rec.SynIndex], d.rec.Lcid)
			}
			require.Len(t, seqs, ranks)
			for stream, lcids := range seqs {
				require.Len(t, lcids, perStream, "stream %d", stream)
				for i, lcid := range lcids {
					require.EqualValues(t, i, lcid, "stream %d reordered", stream)
				}
			}
		}
	}
}

// Remote events are exchanged but not handed to consumers when the slice
// does not begin at step offset zero.
func TestSpikeGatherDeliveryGate(t *testing.T) {
	t.Parallel()
	c := newCluster(t, 2, 1, 2, 2, 0)
	for _, cr := range c.ranks {
		cr.clock.from = 1
	}
	c.ranks[0].spikes.Append(0, 1, exchange.SpikeRecord{Lcid: 1, Lag: 0})
	require.NoError(t, c.gatherSpikes())
	for r, cr := range c.ranks {
		require.Zero(t, cr.sink.total(), "rank %d", r)
		require.Equal(t, 2, cr.mgr.SpikeRounds(), "rank %d", r)
	}
}

// Consecutive slices: the register is drained by each gather, stamps follow
// the advancing clock.
func TestSpikeGatherAcrossSlices(t *testing.T) {
	t.Parallel()
	const minDelay = 2
	c := newCluster(t, 2, 1, minDelay, 4, 0)
	for slice := 0; slice < 3; slice++ {
		c.ranks[1].spikes.Append(0, 0, exchange.SpikeRecord{
			Lcid: uint32(slice), Lag: 0,
		})
		require.NoError(t, c.gatherSpikes())
		for _, cr := range c.ranks {
			cr.mgr.AdvanceModuli()
			cr.clock.step += minDelay
		}
	}
	got := c.ranks[0].sink.deliveries(0)
	require.Len(t, got, 3)
	for slice, d := range got {
		require.EqualValues(t, slice, d.rec.Lcid)
		require.EqualValues(t, slice*minDelay+1, d.stamp)
	}
}

// A received record addressed to a thread outside the team aborts the
// gather on every thread.
func TestSpikeGatherThreadInvariant(t *testing.T) {
	t.Parallel()
	c := newCluster(t, 1, 1, 2, 2, 0)
	c.ranks[0].spikes.Append(0, 0, exchange.SpikeRecord{Tid: 99, Lag: 0})
	require.ErrorIs(t, c.gatherSpikes(), exchange.ErrInvariant)
}

// A received record with a lag outside the min delay window aborts the
// gather.
func TestSpikeGatherLagInvariant(t *testing.T) {
	t.Parallel()
	c := newCluster(t, 1, 1, 2, 2, 0)
	c.ranks[0].spikes.Append(0, 0, exchange.SpikeRecord{Tid: 0, Lag: 5})
	require.ErrorIs(t, c.gatherSpikes(), exchange.ErrInvariant)
}

// Target registrations reach the rank owning the presynaptic node, each
// exactly once, regardless of which rank registered them.
func TestTargetGatherDistributesOwnership(t *testing.T) {
	t.Parallel()
	const ranks, threads, nodes = 3, 2, 9
	c := newCluster(t, ranks, threads, 1, 1, 0)
	for r, cr := range c.ranks {
		for id := 0; id < nodes; id++ {
			tid := id % threads
			cr.registry.Register(tid, exchange.TargetRecord{
				NodeID:   types.NodeID(id),
				Rank:     uint32(r),
				Tid:      uint32(tid),
				SynIndex: 0,
				Lcid:     uint32(id),
			})
		}
	}
	require.NoError(t, c.gatherTargets(context.Background()))

	for owner, cr := range c.ranks {
		// every rank registered once for each of this owner's three nodes
		require.Equal(t, ranks*nodes/ranks, cr.table.Len(), "owner %d", owner)
		for id := 0; id < nodes; id++ {
			recs := cr.table.TargetsOf(types.NodeID(id))
			if id%ranks != owner {
				require.Empty(t, recs, "node %d on rank %d", id, owner)
				continue
			}
			require.Len(t, recs, ranks, "node %d", id)
			seen := map[uint32]bool{}
			for _, rec := range recs {
				require.EqualValues(t, id, rec.NodeID)
				require.EqualValues(t, id, rec.Lcid)
				require.False(t, seen[rec.Rank], "duplicate from rank %d", rec.Rank)
				seen[rec.Rank] = true
			}
		}
	}
}

// Target gather under single-slot segments: the reject path must not lose
// or duplicate registrations.
func TestTargetGatherUnderPressure(t *testing.T) {
	t.Parallel()
	const ranks, threads, nodes = 4, 2, 24
	c := newCluster(t, ranks, threads, 1, 1, 1)
	for r, cr := range c.ranks {
		for id := 0; id < nodes; id++ {
			cr.registry.Register(id%threads, exchange.TargetRecord{
				NodeID: types.NodeID(id),
				Rank:   uint32(r),
				Lcid:   uint32(id),
			})
		}
	}
	require.NoError(t, c.gatherTargets(context.Background()))
	for owner, cr := range c.ranks {
		require.Equal(t, ranks*nodes/ranks, cr.table.Len(), "owner %d", owner)
	}
}

// An empty target gather terminates in one round per rank.
func TestTargetGatherEmpty(t *testing.T) {
	t.Parallel()
	c := newCluster(t, 3, 2, 1, 1, 0)
	require.NoError(t, c.gatherTargets(context.Background()))
	for owner, cr := range c.ranks {
		require.Zero(t, cr.table.Len(), "owner %d", owner)
	}
}
