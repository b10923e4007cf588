package exchange

import (
	"errors"
	"fmt"

	"github.com/neurogrid/go-neurogrid/common/types"
)

// ErrDelayBounds is returned when the configured propagation delay bounds
// are not strictly positive.
var ErrDelayBounds = errors.New("delay bounds must be positive")

// ModuloTables map relative step offsets onto ring buffer bins. Incoming
// events are binned relative to the beginning of the slice in which they are
// delivered, i.e. the slice after the one in which they were generated.
//
// The tables are owned by a single writer; Advance is called exactly once
// per slice, after all local nodes for the slice have been processed.
type ModuloTables struct {
	minDelay int64
	maxDelay int64
	steps    types.Step

	moduli      []int64
	sliceModuli []int64
}

// NewModuloTables builds both tables from scratch for the given clock step.
func NewModuloTables(minDelay, maxDelay int64, steps types.Step) (*ModuloTables, error) {
	if minDelay <= 0 || maxDelay <= 0 {
		return nil, fmt.Errorf("%w: min %d max %d", ErrDelayBounds, minDelay, maxDelay)
	}
	m := &ModuloTables{
		minDelay:    minDelay,
		maxDelay:    maxDelay,
		steps:       steps,
		moduli:      make([]int64, minDelay+maxDelay),
		sliceModuli: make([]int64, minDelay+maxDelay),
	}
	span := minDelay + maxDelay
	for d := int64(0); d < span; d++ {
		m.moduli[d] = (int64(steps) + d) % span
	}
	m.recomputeSliceModuli()
	return m, nil
}

// Advance moves the tables one slice (minDelay steps) forward. The plain
// moduli differ from a fresh build only by a constant offset, so a left
// rotation by minDelay reproduces them. Slice moduli are recomputed: maxDelay
// need not be a multiple of minDelay, so rotation does not suffice there.
func (m *ModuloTables) Advance() {
	m.steps += types.Step(m.minDelay)
	rotated := make([]int64, 0, len(m.moduli))
	rotated = append(rotated, m.moduli[m.minDelay:]...)
	rotated = append(rotated, m.moduli[:m.minDelay]...)
	m.moduli = rotated
	m.recomputeSliceModuli()
}

func (m *ModuloTables) recomputeSliceModuli() {
	span := m.minDelay + m.maxDelay
	// one bin per minDelay steps, up to maxDelay
	bins := (span + m.minDelay - 1) / m.minDelay
	for d := int64(0); d < span; d++ {
		m.sliceModuli[d] = ((int64(m.steps) + d) / m.minDelay) % bins
	}
}

// Modulus returns the ring buffer bin for a relative step offset d in
// [0, minDelay+maxDelay).
func (m *ModuloTables) Modulus(d int64) int64 {
	return m.moduli[d]
}

// SliceModulus returns the slice based ring buffer bin for offset d.
func (m *ModuloTables) SliceModulus(d int64) int64 {
	return m.sliceModuli[d]
}

// Span returns the number of table entries, minDelay+maxDelay.
func (m *ModuloTables) Span() int64 {
	return m.minDelay + m.maxDelay
}
