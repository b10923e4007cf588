// Package exchange implements the collective event and target exchange at
// the core of the simulator: a bounded-buffer, multi-round all-to-all that
// delivers spike records to their remote consumers once per time slice and
// distributes target ownership records once during connectivity build.
//
// Both protocols run the same round: prepare the rank-partitioned send
// buffer, collocate pending records from the producer registers, swap
// buffers with all peers through the collective transport, deliver what
// arrived. Completion is detected two-sided, with sentinel records
// piggybacked on the data channel: a rank whose registers were already
// drained when the round began marks its whole send buffer complete, and a
// rank terminates only once it is drained itself and has observed every
// peer's buffer fully complete in the same round. Records that find their
// destination segment full are rejected back into the register and retried
// first on the next round, so a fixed-size buffer never loses or duplicates
// an event.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/neurogrid/go-neurogrid/codec"
	"github.com/neurogrid/go-neurogrid/common/types"
)

var (
	// ErrInvariant reports a received record that violates the protocol
	// contract. This is a transport or accounting defect; delivering it
	// would corrupt simulation results, so the gather aborts loudly.
	ErrInvariant = errors.New("exchange: protocol invariant violated")

	errNotConfigured = errors.New("exchange: not configured")
)

// Config holds the tunables of the exchange manager.
type Config struct {
	// Threads is the size of the cooperating thread team per rank.
	Threads int `mapstructure:"threads"`
	// SegmentSlots overrides the derived per-rank segment capacity of the
	// send buffer. Zero derives it from threads, ranks and min delay.
	SegmentSlots int `mapstructure:"segment-slots"`
}

// DefaultConfig returns the default exchange configuration.
func DefaultConfig() Config {
	return Config{Threads: 1}
}

func (cfg *Config) Validate() error {
	if cfg.Threads <= 0 {
		return fmt.Errorf("threads must be positive: %d", cfg.Threads)
	}
	if cfg.SegmentSlots < 0 {
		return fmt.Errorf("segment slots must not be negative: %d", cfg.SegmentSlots)
	}
	return nil
}

func (cfg *Config) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddInt("threads", cfg.Threads)
	encoder.AddInt("segment slots", cfg.SegmentSlots)
	return nil
}

// Opt configures the Manager.
type Opt func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Opt {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithConfig overrides the default configuration.
func WithConfig(cfg Config) Opt {
	return func(m *Manager) {
		m.cfg = cfg
	}
}

// roundState is the per-round completion accounting shared by the team.
// me is the AND across threads of "my registers were drained when the round
// began"; others is the AND of "every received slot carried the complete
// sentinel". Flags are reset at the top of each round and combined under a
// narrow critical section, once per thread per round.
type roundState struct {
	prevMe bool
	me     bool
	others bool
	rounds int
	err    error
}

// Manager owns the exchange buffers and runs both gather protocols.
type Manager struct {
	logger    *zap.Logger
	cfg       Config
	transport Transport
	clock     SimClock
	resolver  OwnershipResolver
	register  SpikeRegister
	targets   TargetSource
	spikes    SpikeSink
	table     TargetSink

	moduli *ModuloTables

	// Buffer geometry is fixed between calls to Configure. slots is the
	// send buffer length and also the active receive window: the collective
	// swaps one segment per rank pair, so a full set of received segments is
	// exactly one send buffer long.
	slots   int
	segment int

	sendSpikes buffer[SpikeRecord]
	recvSpikes buffer[SpikeRecord]
	sendBytes  []byte
	recvBytes  []byte

	team       *barrier
	mu         sync.Mutex
	spike      roundState
	configured bool
}

// New creates an exchange manager over the given collaborators. Configure
// must be called before the first gather and again whenever delay bounds,
// thread count or process count change.
func New(
	transport Transport,
	clock SimClock,
	resolver OwnershipResolver,
	register SpikeRegister,
	targets TargetSource,
	spikes SpikeSink,
	table TargetSink,
	opts ...Opt,
) *Manager {
	m := &Manager{
		logger:    zap.NewNop(),
		cfg:       DefaultConfig(),
		transport: transport,
		clock:     clock,
		resolver:  resolver,
		register:  register,
		targets:   targets,
		spikes:    spikes,
		table:     table,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Configure derives all buffer sizes and rebuilds the modulo tables.
// Idempotent: configuring twice with unchanged collaborators yields buffers
// of identical size and neutral content.
func (m *Manager) Configure() error {
	if err := m.cfg.Validate(); err != nil {
		return fmt.Errorf("exchange config: %w", err)
	}
	minDelay, maxDelay := m.clock.MinDelay(), m.clock.MaxDelay()
	moduli, err := NewModuloTables(minDelay, maxDelay, m.clock.CurrentStep())
	if err != nil {
		return err
	}
	ranks := m.transport.NumRanks()
	if ranks <= 0 {
		return fmt.Errorf("exchange: process group is empty")
	}
	m.moduli = moduli
	m.slots, m.segment = sendSlots(ranks, m.cfg.Threads, minDelay)
	if m.cfg.SegmentSlots > 0 {
		m.segment = m.cfg.SegmentSlots
		m.slots = m.segment * ranks
	}
	m.sendSpikes.resize(m.slots, m.segment, ranks)
	m.recvSpikes.resize(m.slots*ranks, m.segment, ranks)
	m.sendBytes = make([]byte, m.slots*SpikeWireSize)
	m.recvBytes = make([]byte, m.slots*SpikeWireSize)
	m.team = newBarrier(m.cfg.Threads)
	m.spike = roundState{}
	m.configured = true
	m.logger.Info("exchange configured",
		zap.Int("ranks", ranks),
		zap.Int("threads", m.cfg.Threads),
		zap.Int("send slots", m.slots),
		zap.Int("segment slots", m.segment),
		zap.Int64("min delay", minDelay),
		zap.Int64("max delay", maxDelay),
	)
	return nil
}

// ClearPending drops undelivered events by refilling all buffers with the
// neutral empty value. Geometry is unchanged.
func (m *Manager) ClearPending() error {
	if !m.configured {
		return errNotConfigured
	}
	ranks := m.transport.NumRanks()
	m.sendSpikes.resize(m.slots, m.segment, ranks)
	m.recvSpikes.resize(m.slots*ranks, m.segment, ranks)
	m.spike = roundState{}
	return nil
}

// AdvanceModuli moves the delay modulo tables one slice forward. Call
// exactly once per slice, after all local nodes have been updated.
func (m *Manager) AdvanceModuli() {
	m.moduli.Advance()
}

// Moduli exposes the delay modulo tables for ring buffer binning.
func (m *Manager) Moduli() *ModuloTables {
	return m.moduli
}

// SpikeRounds returns the number of rounds the last spike gather took.
func (m *Manager) SpikeRounds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.spike.rounds
}

// GatherSpikeData runs the spike exchange for one slice. It must be called
// once per slice by every thread of the team, concurrently; threads
// cooperate through internal barriers and return together, with the same
// error on failure.
func (m *Manager) GatherSpikeData(tid int) error {
	if !m.configured {
		return errNotConfigured
	}
	m.register.ResetEntryPoint(tid)
	m.team.wait()
	if tid == 0 {
		m.mu.Lock()
		m.spike = roundState{}
		m.mu.Unlock()
	}
	m.team.wait()

	stamps := m.preparedStamps()
	deliver := m.clock.FromStep() == 0
	for {
		if tid == 0 {
			m.mu.Lock()
			m.spike.prevMe = m.spike.me
			m.spike.me = true
			m.spike.others = true
			m.spike.rounds++
			m.mu.Unlock()
		}
		m.team.wait()

		m.register.RestoreEntryPoint(tid)
		m.mu.Lock()
		prevMe := m.spike.prevMe
		m.mu.Unlock()
		sentinel := SpikeRecord{State: StateEmpty}
		if prevMe {
			sentinel.State = StateComplete
		}
		from, to := chunk(m.slots, m.cfg.Threads, tid)
		m.sendSpikes.fillRange(from, to, sentinel)
		m.team.wait()

		meTid := m.collocateSpikes(tid)
		m.mu.Lock()
		m.spike.me = m.spike.me && meTid
		m.mu.Unlock()
		m.team.wait()

		m.mu.Lock()
		meAll := m.spike.me
		m.mu.Unlock()
		if meAll && !prevMe {
			// local completion was reached during this round; flip the
			// buffer to complete so peers learn it before the exchange
			m.sendSpikes.fillRange(from, to, SpikeRecord{State: StateComplete})
		}
		m.register.SaveEntryPoint(tid)
		m.team.wait()

		if tid == 0 {
			if err := m.exchangeSpikes(context.Background()); err != nil {
				m.failSpikes(err)
			}
		}
		m.team.wait()

		m.mu.Lock()
		err := m.spike.err
		m.mu.Unlock()
		if err != nil {
			return err
		}

		othersTid, err := m.deliverSpikes(tid, stamps, deliver)
		m.mu.Lock()
		m.spike.others = m.spike.others && othersTid
		if err != nil && m.spike.err == nil {
			m.spike.err = err
		}
		m.mu.Unlock()
		m.team.wait()

		m.mu.Lock()
		done := m.spike.me && m.spike.others
		err = m.spike.err
		rounds := m.spike.rounds
		m.mu.Unlock()
		if err != nil {
			return err
		}
		if done {
			if tid == 0 {
				spikeRounds.Observe(float64(rounds))
				m.logger.Debug("spike gather complete", zap.Int("rounds", rounds))
			}
			break
		}
		// keep the termination check of slow threads ahead of the next
		// round's flag reset
		m.team.wait()
	}
	m.register.Clear(tid)
	return nil
}

func (m *Manager) failSpikes(err error) {
	m.mu.Lock()
	if m.spike.err == nil {
		m.spike.err = err
	}
	m.mu.Unlock()
}

// preparedStamps precomputes a delivery timestamp for every possible lag
// within the min delay window: the event takes effect lag+1 steps after the
// clock of the slice in which it was exchanged.
func (m *Manager) preparedStamps() []types.Step {
	minDelay := m.clock.MinDelay()
	now := m.clock.CurrentStep()
	stamps := make([]types.Step, minDelay)
	for lag := range stamps {
		stamps[lag] = now + types.Step(lag) + 1
	}
	return stamps
}

// collocateSpikes drains this thread's view of the registers into the send
// buffer, in register order, stopping when the assigned rank range is
// exhausted or all its segments are full. Returns whether the thread was
// already drained when the round began (wrote nothing, rejected nothing).
func (m *Manager) collocateSpikes(tid int) bool {
	start, end := rankShare(m.sendSpikes.ranks, m.cfg.Threads, tid)
	if start == end {
		return true
	}
	seg := m.segment
	offsets := make([]int, end-start)
	filled, total := 0, (end-start)*seg
	untouched, rejected := true, false
	for {
		rank, rec, ok := m.register.Next(tid, start, end)
		if !ok {
			break
		}
		if ri := rank - start; offsets[ri] < seg {
			rec.State = StateData
			m.sendSpikes.set(rank, offsets[ri], rec)
			offsets[ri]++
			filled++
			untouched = false
			spikesSent.Inc()
		} else {
			m.register.RejectLast(tid)
			m.register.SaveEntryPoint(tid)
			rejected = true
			spikeRejects.Inc()
		}
		if filled == total {
			break
		}
	}
	return untouched && !rejected
}

func (m *Manager) exchangeSpikes(ctx context.Context) error {
	if err := codec.Pack[SpikeRecord, *SpikeRecord](m.sendBytes, m.sendSpikes.slots, SpikeWireSize); err != nil {
		return err
	}
	if err := m.transport.Exchange(ctx, m.sendBytes, m.recvBytes, m.segment*SpikeWireSize); err != nil {
		return fmt.Errorf("collective spike exchange: %w", err)
	}
	return codec.Unpack[SpikeRecord, *SpikeRecord](m.recvBytes, m.recvSpikes.slots[:m.slots], SpikeWireSize)
}

// deliverSpikes hands the received records addressed to this thread to the
// local consumer and reports whether every peer advertised completion.
// Events are delivered only when the slice starts at step offset zero;
// later steps of the same slice reuse what is already in the ring buffers.
func (m *Manager) deliverSpikes(tid int, stamps []types.Step, deliver bool) (bool, error) {
	allComplete := true
	for i := range m.recvSpikes.slots[:m.slots] {
		rec := &m.recvSpikes.slots[i]
		switch rec.State {
		case StateComplete:
		case StateEmpty:
			allComplete = false
		case StateData:
			allComplete = false
			if int(rec.Tid) >= m.cfg.Threads {
				return false, fmt.Errorf("%w: spike for thread %d in a team of %d", ErrInvariant, rec.Tid, m.cfg.Threads)
			}
			if int64(rec.Lag) >= m.clock.MinDelay() {
				return false, fmt.Errorf("%w: lag %d outside min delay window %d", ErrInvariant, rec.Lag, m.clock.MinDelay())
			}
			if int(rec.Tid) != tid || !deliver {
				continue
			}
			if err := m.spikes.DeliverSpike(tid, *rec, stamps[rec.Lag]); err != nil {
				return false, fmt.Errorf("deliver spike: %w", err)
			}
			spikesDelivered.Inc()
		}
	}
	return allComplete, nil
}

// GatherTargetData distributes target registration records to the ranks
// owning their nodes. It spawns its own thread team and must run to
// completion before the first spike exchange: spike delivery assumes the
// target tables are populated. Errors raised by a thread are surfaced here,
// after the whole team has exited.
func (m *Manager) GatherTargetData(ctx context.Context) error {
	if !m.configured {
		return errNotConfigured
	}
	ranks := m.transport.NumRanks()
	g := &targetGather{
		m:         m,
		sendBytes: make([]byte, m.slots*TargetWireSize),
		recvBytes: make([]byte, m.slots*TargetWireSize),
		team:      newBarrier(m.cfg.Threads),
	}
	g.send.resize(m.slots, m.segment, ranks)
	g.recv.resize(m.slots*ranks, m.segment, ranks)

	var eg errgroup.Group
	for tid := 0; tid < m.cfg.Threads; tid++ {
		eg.Go(func() error {
			return g.run(ctx, tid)
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("gather target data: %w", err)
	}
	targetRounds.Observe(float64(g.st.rounds))
	m.logger.Debug("target gather complete", zap.Int("rounds", g.st.rounds))
	return nil
}

// targetGather carries the state of one target registration gather. The
// round structure mirrors the spike gather over TargetRecord, with the
// destination rank resolved from the owning rank of each record's node.
type targetGather struct {
	m         *Manager
	send      buffer[TargetRecord]
	recv      buffer[TargetRecord]
	sendBytes []byte
	recvBytes []byte
	team      *barrier
	mu        sync.Mutex
	st        roundState
}

func (g *targetGather) run(ctx context.Context, tid int) error {
	m := g.m
	m.targets.ResetEntryPoint(tid)
	g.team.wait()
	for {
		if tid == 0 {
			g.mu.Lock()
			g.st.prevMe = g.st.me
			g.st.me = true
			g.st.others = true
			g.st.rounds++
			g.mu.Unlock()
		}
		g.team.wait()

		m.targets.RestoreEntryPoint(tid)
		g.mu.Lock()
		prevMe := g.st.prevMe
		g.mu.Unlock()
		sentinel := TargetRecord{State: StateEmpty}
		if prevMe {
			sentinel.State = StateComplete
		}
		from, to := chunk(m.slots, m.cfg.Threads, tid)
		g.send.fillRange(from, to, sentinel)
		g.team.wait()

		meTid, err := g.collocate(tid)
		g.mu.Lock()
		g.st.me = g.st.me && meTid
		if err != nil && g.st.err == nil {
			g.st.err = err
		}
		g.mu.Unlock()
		g.team.wait()

		g.mu.Lock()
		meAll := g.st.me
		err = g.st.err
		g.mu.Unlock()
		if err != nil {
			return err
		}
		if meAll && !prevMe {
			g.send.fillRange(from, to, TargetRecord{State: StateComplete})
		}
		m.targets.SaveEntryPoint(tid)
		g.team.wait()

		if tid == 0 {
			if err := g.exchange(ctx); err != nil {
				g.mu.Lock()
				if g.st.err == nil {
					g.st.err = err
				}
				g.mu.Unlock()
			}
		}
		g.team.wait()

		g.mu.Lock()
		err = g.st.err
		g.mu.Unlock()
		if err != nil {
			return err
		}

		othersTid, err := g.distribute(tid)
		g.mu.Lock()
		g.st.others = g.st.others && othersTid
		if err != nil && g.st.err == nil {
			g.st.err = err
		}
		g.mu.Unlock()
		g.team.wait()

		g.mu.Lock()
		done := g.st.me && g.st.others
		err = g.st.err
		g.mu.Unlock()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		g.team.wait()
	}
}

func (g *targetGather) collocate(tid int) (bool, error) {
	m := g.m
	start, end := rankShare(g.send.ranks, m.cfg.Threads, tid)
	if start == end {
		return true, nil
	}
	seg := g.send.segment
	offsets := make([]int, end-start)
	filled, total := 0, (end-start)*seg
	untouched, rejected := true, false
	for {
		rec, ok := m.targets.Next(tid, start, end)
		if !ok {
			break
		}
		rank := int(m.resolver.RankOf(rec.NodeID))
		if rank < start || rank >= end {
			return false, fmt.Errorf("%w: target owned by rank %d outside assigned range [%d, %d)",
				ErrInvariant, rank, start, end)
		}
		if ri := rank - start; offsets[ri] < seg {
			rec.State = StateData
			g.send.set(rank, offsets[ri], rec)
			offsets[ri]++
			filled++
			untouched = false
			targetsSent.Inc()
		} else {
			m.targets.RejectLast(tid)
			m.targets.SaveEntryPoint(tid)
			rejected = true
			targetRejects.Inc()
		}
		if filled == total {
			break
		}
	}
	return untouched && !rejected, nil
}

func (g *targetGather) exchange(ctx context.Context) error {
	m := g.m
	if err := codec.Pack[TargetRecord, *TargetRecord](g.sendBytes, g.send.slots, TargetWireSize); err != nil {
		return err
	}
	if err := m.transport.Exchange(ctx, g.sendBytes, g.recvBytes, g.send.segment*TargetWireSize); err != nil {
		return fmt.Errorf("collective target exchange: %w", err)
	}
	return codec.Unpack[TargetRecord, *TargetRecord](g.recvBytes, g.recv.slots[:m.slots], TargetWireSize)
}

// distribute applies received registrations to the local delivery table.
// A record counts only if it carries data and its node is owned here; each
// record is applied by exactly one thread of the team.
func (g *targetGather) distribute(tid int) (bool, error) {
	m := g.m
	allComplete := true
	for i := range g.recv.slots[:m.slots] {
		rec := &g.recv.slots[i]
		switch rec.State {
		case StateComplete:
		case StateEmpty:
			allComplete = false
		case StateData:
			allComplete = false
			if !m.resolver.IsLocal(rec.NodeID) {
				continue
			}
			if m.ownerThread(rec.NodeID) != tid {
				continue
			}
			if err := m.table.AddTarget(tid, *rec); err != nil {
				return false, fmt.Errorf("add target: %w", err)
			}
			targetsRegistered.Inc()
		}
	}
	return allComplete, nil
}

// ownerThread shards locally owned nodes deterministically across the team
// so exactly one thread applies each received registration.
func (m *Manager) ownerThread(id types.NodeID) int {
	return int(uint64(id) % uint64(m.cfg.Threads))
}
