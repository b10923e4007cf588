package exchange

import (
	"context"

	"github.com/neurogrid/go-neurogrid/common/types"
)

//go:generate mockgen -package=exchange -destination=./mocks.go -source=./interface.go

// SpikeRegister stores the spikes generated by local producer threads during
// the current slice and replays them through one checkpointed cursor per
// collocating thread. Within one producer's stream the replay order is FIFO;
// a rejected record is retried first on the next round and never reordered
// relative to its producer.
type SpikeRegister interface {
	// ResetEntryPoint moves tid's saved entry point to the beginning.
	ResetEntryPoint(tid int)
	// RestoreEntryPoint rewinds tid's cursor to its saved entry point.
	RestoreEntryPoint(tid int)
	// SaveEntryPoint persists tid's resume position: the earliest record
	// rejected since the last restore, or the current cursor otherwise.
	SaveEntryPoint(tid int)
	// Next returns the next pending record whose destination rank falls in
	// [rankStart, rankEnd), marking it consumed. ok is false once the range
	// is exhausted.
	Next(tid, rankStart, rankEnd int) (rank int, rec SpikeRecord, ok bool)
	// RejectLast returns the record most recently handed out by Next to the
	// pending state, to be retried on the following round.
	RejectLast(tid int)
	// Clear drops all records produced by thread tid.
	Clear(tid int)
}

// TargetSource replays the connection targets registered on this rank during
// connectivity build, with the same cursor semantics as SpikeRegister.
// Records come back in registration order per producer thread; the
// destination rank is not part of the record and is resolved from the
// owning rank of the record's global node id.
type TargetSource interface {
	ResetEntryPoint(tid int)
	RestoreEntryPoint(tid int)
	SaveEntryPoint(tid int)
	Next(tid, rankStart, rankEnd int) (rec TargetRecord, ok bool)
	RejectLast(tid int)
}

// OwnershipResolver maps global node ids onto the process group.
type OwnershipResolver interface {
	RankOf(id types.NodeID) types.Rank
	IsLocal(id types.NodeID) bool
}

// SimClock exposes the simulation step counter and the global propagation
// delay bounds. Steps are logical; nothing here is wall clock time.
type SimClock interface {
	// CurrentStep is the step at the beginning of the current slice.
	CurrentStep() types.Step
	// FromStep is the offset of the next update step within the slice;
	// remote events are delivered only when a slice starts at offset zero.
	FromStep() types.Step
	MinDelay() int64
	MaxDelay() int64
}

// Transport is the synchronous collective all-to-all primitive. Every rank
// must call Exchange with the same perRank byte count; the call blocks until
// all ranks have contributed, then recv segment r holds the bytes rank r
// sent for this rank.
type Transport interface {
	Exchange(ctx context.Context, send, recv []byte, perRank int) error
	NumRanks() int
	Rank() types.Rank
}

// SpikeSink consumes remote events delivered to a local thread.
type SpikeSink interface {
	DeliverSpike(tid int, rec SpikeRecord, stamp types.Step) error
}

// TargetSink absorbs target registrations owned by this rank into the local
// delivery table.
type TargetSink interface {
	AddTarget(tid int, rec TargetRecord) error
}
