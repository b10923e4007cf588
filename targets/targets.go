// Package targets holds the two sides of target bookkeeping: the Registry of
// connections registered locally during network build, replayed into the
// target gather, and the Table of targets owned by this rank, populated by
// the gather and consulted on every spike delivery.
package targets

import (
	"github.com/neurogrid/go-neurogrid/common/types"
	"github.com/neurogrid/go-neurogrid/exchange"
	"github.com/neurogrid/go-neurogrid/register"
)

// Resolver maps global node ids onto the process group.
type Resolver interface {
	RankOf(id types.NodeID) types.Rank
	IsLocal(id types.NodeID) bool
}

// Registry accumulates the target records registered by local build threads.
// The owning rank of each record's node is resolved once, at registration,
// so replay during the gather is a plain cursor walk.
type Registry struct {
	store    *register.Store[exchange.TargetRecord]
	resolver Resolver
}

// NewRegistry creates a registry for a team of the given size.
func NewRegistry(threads int, resolver Resolver) *Registry {
	return &Registry{
		store:    register.New[exchange.TargetRecord](threads),
		resolver: resolver,
	}
}

// Register records that this rank holds a connection from rec.NodeID. The
// record is queued for the rank owning that node.
func (r *Registry) Register(tid int, rec exchange.TargetRecord) {
	rank := int(r.resolver.RankOf(rec.NodeID))
	r.store.Append(tid, rank, rec)
}

// Len returns the number of registered records.
func (r *Registry) Len() int {
	return r.store.Len()
}

func (r *Registry) ResetEntryPoint(tid int)   { r.store.ResetEntryPoint(tid) }
func (r *Registry) RestoreEntryPoint(tid int) { r.store.RestoreEntryPoint(tid) }
func (r *Registry) SaveEntryPoint(tid int)    { r.store.SaveEntryPoint(tid) }
func (r *Registry) RejectLast(tid int)        { r.store.RejectLast(tid) }

// Next returns the next pending record owned by a rank in [rankStart,
// rankEnd). The destination rank is re-derived from the record's node by the
// caller; only the cursor needs it here.
func (r *Registry) Next(tid, rankStart, rankEnd int) (exchange.TargetRecord, bool) {
	_, rec, ok := r.store.Next(tid, rankStart, rankEnd)
	return rec, ok
}

// Clear drops the records registered by thread tid, typically after the
// gather has distributed them.
func (r *Registry) Clear(tid int) {
	r.store.Clear(tid)
}

// Table is the delivery table of a rank: for every locally owned node, the
// remote connections that must receive its spikes. Entries are sharded by
// thread, matching how the gather shards incoming registrations, so the
// gather writes without locks.
type Table struct {
	shards []map[types.NodeID][]exchange.TargetRecord
}

// NewTable creates an empty table for a team of the given size.
func NewTable(threads int) *Table {
	t := &Table{shards: make([]map[types.NodeID][]exchange.TargetRecord, threads)}
	for i := range t.shards {
		t.shards[i] = make(map[types.NodeID][]exchange.TargetRecord)
	}
	return t
}

// AddTarget stores a registration in thread tid's shard.
func (t *Table) AddTarget(tid int, rec exchange.TargetRecord) error {
	t.shards[tid][rec.NodeID] = append(t.shards[tid][rec.NodeID], rec)
	return nil
}

// TargetsOf returns the registered targets of a node. The shard is derived
// the same way the gather assigns incoming registrations to threads, node id
// modulo team size.
func (t *Table) TargetsOf(id types.NodeID) []exchange.TargetRecord {
	return t.shards[uint64(id)%uint64(len(t.shards))][id]
}

// Len returns the total number of stored registrations.
func (t *Table) Len() int {
	n := 0
	for _, shard := range t.shards {
		for _, recs := range shard {
			n += len(recs)
		}
	}
	return n
}

// ModuloResolver distributes nodes round robin over the process group: node
// id modulo group size.
type ModuloResolver struct {
	rank  types.Rank
	ranks int
}

// NewModuloResolver creates a resolver for the given local rank out of ranks.
func NewModuloResolver(rank types.Rank, ranks int) *ModuloResolver {
	return &ModuloResolver{rank: rank, ranks: ranks}
}

func (r *ModuloResolver) RankOf(id types.NodeID) types.Rank {
	return types.Rank(uint64(id) % uint64(r.ranks))
}

func (r *ModuloResolver) IsLocal(id types.NodeID) bool {
	return r.RankOf(id) == r.rank
}
