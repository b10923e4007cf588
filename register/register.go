// Package register implements the pending-record store feeding the exchange
// protocols: per-producer append-only queues replayed through checkpointed
// per-collocator cursors. A record handed out by Next is marked consumed and
// never replayed, unless the collocator hands it back with RejectLast; the
// saved entry point then pins to the earliest rejected record so the next
// round resumes there without re-sending anything that already went out.
package register

type entry[T any] struct {
	rank      int
	rec       T
	processed bool
}

// pos addresses one record: queue index, then offset within the queue.
type pos struct {
	queue int
	index int
}

type cursor struct {
	cur      pos
	entry    pos
	last     pos
	hasLast  bool
	rejected bool
	rejectAt pos
}

// Store holds the records appended by a fixed-size team of producer threads.
// Producers append only to their own queue; collocators replay all queues
// filtered by destination rank range. Rank ranges of different collocators
// are disjoint, so cursors of different threads never touch the same record
// and the store needs no lock on the replay path.
type Store[T any] struct {
	queues  [][]entry[T]
	cursors []cursor
}

// New creates a store for a team of the given size.
func New[T any](threads int) *Store[T] {
	return &Store[T]{
		queues:  make([][]entry[T], threads),
		cursors: make([]cursor, threads),
	}
}

// Append records rec, destined for the given rank, on producer's queue.
func (s *Store[T]) Append(producer, rank int, rec T) {
	s.queues[producer] = append(s.queues[producer], entry[T]{rank: rank, rec: rec})
}

// Len returns the total number of records currently held, consumed or not.
func (s *Store[T]) Len() int {
	n := 0
	for _, q := range s.queues {
		n += len(q)
	}
	return n
}

// ResetEntryPoint moves tid's saved entry point back to the first record.
func (s *Store[T]) ResetEntryPoint(tid int) {
	c := &s.cursors[tid]
	c.entry = pos{}
}

// RestoreEntryPoint rewinds tid's cursor to the saved entry point and clears
// the round-local reject bookkeeping.
func (s *Store[T]) RestoreEntryPoint(tid int) {
	c := &s.cursors[tid]
	c.cur = c.entry
	c.hasLast = false
	c.rejected = false
}

// SaveEntryPoint persists tid's resume position: the earliest record rejected
// since the last restore, or the current cursor when nothing was rejected.
func (s *Store[T]) SaveEntryPoint(tid int) {
	c := &s.cursors[tid]
	if c.rejected {
		c.entry = c.rejectAt
	} else {
		c.entry = c.cur
	}
}

// Next returns the next pending record whose destination rank falls in
// [rankStart, rankEnd), marking it consumed. Records outside the range are
// skipped but stay pending for the cursor that owns their rank. ok is false
// once the range is exhausted.
func (s *Store[T]) Next(tid, rankStart, rankEnd int) (int, T, bool) {
	c := &s.cursors[tid]
	for q := c.cur.queue; q < len(s.queues); q++ {
		start := 0
		if q == c.cur.queue {
			start = c.cur.index
		}
		queue := s.queues[q]
		for i := start; i < len(queue); i++ {
			e := &queue[i]
			// the range check must come first: the processed flag of an
			// out-of-range record may be written concurrently by the cursor
			// owning that rank
			if e.rank < rankStart || e.rank >= rankEnd || e.processed {
				continue
			}
			e.processed = true
			c.last = pos{queue: q, index: i}
			c.hasLast = true
			c.cur = pos{queue: q, index: i + 1}
			return e.rank, e.rec, true
		}
		c.cur = pos{queue: q + 1}
	}
	var zero T
	return 0, zero, false
}

// RejectLast returns the record most recently handed out by Next to the
// pending state. The first reject of a round pins the resume position, so a
// later SaveEntryPoint lands on it even if Next kept going for other ranks.
func (s *Store[T]) RejectLast(tid int) {
	c := &s.cursors[tid]
	if !c.hasLast {
		return
	}
	s.queues[c.last.queue][c.last.index].processed = false
	if !c.rejected {
		c.rejected = true
		c.rejectAt = c.last
	}
	c.hasLast = false
}

// Clear drops all records produced by thread tid and resets its cursor. Call
// after a gather has delivered everything, or to discard pending records.
func (s *Store[T]) Clear(tid int) {
	s.queues[tid] = s.queues[tid][:0]
	s.cursors[tid] = cursor{}
}
