// Package types defines the scalar identifiers shared by the exchange
// protocols and their collaborators.
package types

import (
	"math"

	"github.com/spacemeshos/go-scale"
)

// NodeID globally identifies a simulated node. Ownership of a NodeID is
// fixed for the lifetime of the process group and resolvable on every rank.
type NodeID uint64

// InvalidNodeID marks an unset node reference.
const InvalidNodeID = NodeID(math.MaxUint64)

// EncodeScale implements scale.Encodable.
func (id NodeID) EncodeScale(enc *scale.Encoder) (int, error) {
	return scale.EncodeUint64(enc, uint64(id))
}

// DecodeScale implements scale.Decodable.
func (id *NodeID) DecodeScale(dec *scale.Decoder) (int, error) {
	v, total, err := scale.DecodeUint64(dec)
	*id = NodeID(v)
	return total, err
}

// Rank identifies one participant in the process group.
type Rank uint32

// Step is an absolute simulation step. Steps only move forward, one slice
// (min delay steps) at a time between exchanges.
type Step int64
