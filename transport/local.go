// Package transport provides the collective all-to-all primitive behind the
// exchange protocols. The in-process implementation here runs every rank as
// a goroutine group inside one process, which is how tests and the demo
// binary exercise the full multi-rank protocol without a launcher.
package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/neurogrid/go-neurogrid/common/types"
)

// ErrGeometry reports exchange buffers whose sizes disagree with the group
// geometry or with each other across ranks.
var ErrGeometry = errors.New("transport: exchange geometry mismatch")

// Group couples the endpoints of an in-process rank group. Each exchange is
// a rendezvous: the call blocks until every rank of the group has arrived
// with the same per-rank byte count, then segments are swapped pairwise and
// all callers are released together.
type Group struct {
	size int

	mu    sync.Mutex
	round *round
}

type round struct {
	sends   [][]byte
	recvs   [][]byte
	perRank int
	arrived int
	done    chan struct{}
	err     error
}

// NewGroup creates a group of the given size and returns its endpoints,
// indexed by rank.
func NewGroup(size int) []*Endpoint {
	g := &Group{size: size}
	eps := make([]*Endpoint, size)
	for i := range eps {
		eps[i] = &Endpoint{group: g, rank: types.Rank(i)}
	}
	return eps
}

// Endpoint is one rank's handle on the group collective.
type Endpoint struct {
	group *Group
	rank  types.Rank
}

func (e *Endpoint) NumRanks() int {
	return e.group.size
}

func (e *Endpoint) Rank() types.Rank {
	return e.rank
}

// Exchange performs the all-to-all swap for this rank. send must hold one
// perRank-sized segment per destination rank; on return, recv segment r
// holds the segment rank r sent for this rank. A caller that returns early
// on ctx leaves the round to complete without it, so its recv buffer may
// still be written afterwards; reuse it only after a fresh Configure.
func (e *Endpoint) Exchange(ctx context.Context, send, recv []byte, perRank int) error {
	g := e.group
	if len(send) != perRank*g.size {
		return fmt.Errorf("%w: send holds %d bytes, need %d per rank for %d ranks",
			ErrGeometry, len(send), perRank, g.size)
	}
	if len(recv) < perRank*g.size {
		return fmt.Errorf("%w: recv holds %d bytes, need at least %d",
			ErrGeometry, len(recv), perRank*g.size)
	}

	g.mu.Lock()
	if g.round == nil {
		g.round = &round{
			sends: make([][]byte, g.size),
			recvs: make([][]byte, g.size),
			done:  make(chan struct{}),
		}
	}
	r := g.round
	if r.arrived == 0 {
		r.perRank = perRank
	} else if perRank != r.perRank && r.err == nil {
		r.err = fmt.Errorf("%w: rank %d exchanges %d bytes per rank, group started with %d",
			ErrGeometry, e.rank, perRank, r.perRank)
	}
	r.sends[e.rank] = send
	r.recvs[e.rank] = recv
	r.arrived++
	if r.arrived == g.size {
		if r.err == nil {
			swap(r.sends, r.recvs, r.perRank)
		}
		g.round = nil
		close(r.done)
	}
	g.mu.Unlock()

	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// swap copies segment dst of every rank's send buffer into segment src of
// rank dst's receive buffer.
func swap(sends, recvs [][]byte, perRank int) {
	for src := range sends {
		for dst := range recvs {
			from := sends[src][dst*perRank : (dst+1)*perRank]
			to := recvs[dst][src*perRank : (src+1)*perRank]
			copy(to, from)
		}
	}
}
