package exchange

// sendSlots derives the send buffer geometry from the process group size,
// the thread count and the minimum delay. The +2 reserves the two trailing
// sentinel slots of the legacy per-slot-marker scheme, kept so buffer
// geometry stays compatible; the floor of 4 guarantees room for them even in
// a single thread, unit delay setup. The slot count is rounded up to a
// multiple of ranks so every rank segment has equal size.
func sendSlots(ranks, threads int, minDelay int64) (total, segment int) {
	n := threads*int(minDelay) + 2
	if n < 4 {
		n = 4
	}
	segment = (n + ranks - 1) / ranks
	return segment * ranks, segment
}

// buffer is a fixed-capacity exchange buffer of records, partitioned into
// contiguous equal segments, one per destination rank. Segment r is written
// only by the local rank for rank r; after the collective exchange, the
// receive buffer's segment r holds what rank r wrote for this rank.
//
// Threads share one buffer without locks: each thread writes only its
// assigned rank segments, and writes happen strictly between barriers.
type buffer[T any] struct {
	slots   []T
	segment int
	ranks   int
}

// resize (re)allocates the buffer to hold the given number of slots, filled
// with the neutral value. Idempotent and safe before the first round.
func (b *buffer[T]) resize(slots, segment, ranks int) {
	var neutral T
	if len(b.slots) != slots {
		b.slots = make([]T, slots)
	} else {
		for i := range b.slots {
			b.slots[i] = neutral
		}
	}
	b.segment = segment
	b.ranks = ranks
}

// fillRange overwrites slots [from, to) with v.
func (b *buffer[T]) fillRange(from, to int, v T) {
	for i := from; i < to; i++ {
		b.slots[i] = v
	}
}

// set writes a record at offset off of rank's segment.
func (b *buffer[T]) set(rank, off int, v T) {
	b.slots[rank*b.segment+off] = v
}

// chunk returns the [from, to) share of n slots owned by thread tid out of
// a team of threads, for buffer sweeps split across the team.
func chunk(n, threads, tid int) (int, int) {
	per := (n + threads - 1) / threads
	from := tid * per
	if from > n {
		from = n
	}
	to := from + per
	if to > n {
		to = n
	}
	return from, to
}

// rankShare returns the contiguous [start, end) range of destination ranks
// assigned to collocating thread tid. Ranges of different threads are
// disjoint, which is what makes the shared send buffer write-safe.
func rankShare(ranks, threads, tid int) (int, int) {
	per := (ranks + threads - 1) / threads
	start := tid * per
	if start > ranks {
		start = ranks
	}
	end := start + per
	if end > ranks {
		end = ranks
	}
	return start, end
}
