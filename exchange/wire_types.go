package exchange

import (
	"errors"

	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"

	"github.com/neurogrid/go-neurogrid/common/types"
)

// RecordState tags every buffer slot. Sentinel states travel through the
// data channel itself; there is no side channel for completion.
type RecordState byte

const (
	// StateEmpty marks an unused slot.
	StateEmpty RecordState = iota
	// StateComplete declares the sending rank done for the current protocol
	// run. A completed rank marks its whole send buffer complete, so every
	// peer observes the same verdict for it within one round.
	StateComplete
	// StateData marks a slot carrying a real record.
	StateData
)

var errUnknownState = errors.New("unknown record state")

var stateNames = [...]string{"empty", "complete", "data"}

func (s RecordState) String() string {
	if int(s) >= len(stateNames) {
		return "invalid"
	}
	return stateNames[s]
}

const (
	// SpikeWireSize is the encoded size of one SpikeRecord slot.
	SpikeWireSize = 17
	// TargetWireSize is the encoded size of one TargetRecord slot.
	TargetWireSize = 25
)

// SpikeRecord is one event addressed to a thread on the receiving rank.
// It points at a local connection on the receiver; the receiver resolves it
// to concrete targets through its own delivery table.
type SpikeRecord struct {
	State    RecordState
	Tid      uint32 // destination thread on the receiving rank
	SynIndex uint32 // synapse type index
	Lcid     uint32 // local connection index on the receiving rank
	Lag      uint32 // offset within the min-delay window
}

func (r *SpikeRecord) EncodeScale(enc *scale.Encoder) (int, error) {
	var total int
	{
		// full byte for the enum, not compact
		n, err := scale.EncodeByte(enc, byte(r.State))
		if err != nil {
			return total, err
		}
		total += n
	}
	for _, v := range [...]uint32{r.Tid, r.SynIndex, r.Lcid, r.Lag} {
		n, err := scale.EncodeUint32(enc, v)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (r *SpikeRecord) DecodeScale(dec *scale.Decoder) (int, error) {
	var total int
	{
		b, n, err := scale.DecodeByte(dec)
		if err != nil {
			return total, err
		}
		if RecordState(b) > StateData {
			return total, errUnknownState
		}
		r.State = RecordState(b)
		total += n
	}
	for _, field := range [...]*uint32{&r.Tid, &r.SynIndex, &r.Lcid, &r.Lag} {
		v, n, err := scale.DecodeUint32(dec)
		if err != nil {
			return total, err
		}
		*field = v
		total += n
	}
	return total, nil
}

func (r *SpikeRecord) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("state", r.State.String())
	encoder.AddUint32("tid", r.Tid)
	encoder.AddUint32("syn", r.SynIndex)
	encoder.AddUint32("lcid", r.Lcid)
	encoder.AddUint32("lag", r.Lag)
	return nil
}

// TargetRecord registers, with the rank owning NodeID, that Rank holds a
// connection from that node and must receive its spikes. Consumed once by
// the owner to extend its delivery table, then discarded.
type TargetRecord struct {
	State    RecordState
	NodeID   types.NodeID // global id of the presynaptic node
	Rank     uint32       // rank that needs events from the owner of NodeID
	Tid      uint32       // thread on Rank holding the connection
	SynIndex uint32
	Lcid     uint32
}

func (r *TargetRecord) EncodeScale(enc *scale.Encoder) (int, error) {
	var total int
	{
		n, err := scale.EncodeByte(enc, byte(r.State))
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := r.NodeID.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	for _, v := range [...]uint32{r.Rank, r.Tid, r.SynIndex, r.Lcid} {
		n, err := scale.EncodeUint32(enc, v)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (r *TargetRecord) DecodeScale(dec *scale.Decoder) (int, error) {
	var total int
	{
		b, n, err := scale.DecodeByte(dec)
		if err != nil {
			return total, err
		}
		if RecordState(b) > StateData {
			return total, errUnknownState
		}
		r.State = RecordState(b)
		total += n
	}
	{
		n, err := r.NodeID.DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
	for _, field := range [...]*uint32{&r.Rank, &r.Tid, &r.SynIndex, &r.Lcid} {
		v, n, err := scale.DecodeUint32(dec)
		if err != nil {
			return total, err
		}
		*field = v
		total += n
	}
	return total, nil
}

func (r *TargetRecord) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("state", r.State.String())
	encoder.AddUint64("node", uint64(r.NodeID))
	encoder.AddUint32("rank", r.Rank)
	encoder.AddUint32("tid", r.Tid)
	encoder.AddUint32("syn", r.SynIndex)
	encoder.AddUint32("lcid", r.Lcid)
	return nil
}
