package exchange

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neurogrid/go-neurogrid/common/types"
)

func TestModuloTablesBounds(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name     string
		min, max int64
	}{
		{"zero min", 0, 5},
		{"zero max", 3, 0},
		{"negative min", -1, 5},
		{"negative max", 3, -2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewModuloTables(tc.min, tc.max, 0)
			require.ErrorIs(t, err, ErrDelayBounds)
		})
	}
}

func TestModuloTablesFresh(t *testing.T) {
	t.Parallel()
	m, err := NewModuloTables(2, 5, 0)
	require.NoError(t, err)
	require.EqualValues(t, 7, m.Span())
	for d := int64(0); d < m.Span(); d++ {
		require.Equal(t, d%7, m.Modulus(d))
		require.Equal(t, (d/2)%4, m.SliceModulus(d))
	}
}

// Advancing n slices must reproduce a fresh build at the advanced step, for
// delay combinations where the spans do and do not divide evenly.
func TestModuloTablesAdvance(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name     string
		min, max int64
	}{
		{"unit", 1, 1},
		{"even split", 2, 8},
		{"ragged split", 3, 7},
		{"min above max", 5, 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rolling, err := NewModuloTables(tc.min, tc.max, 0)
			require.NoError(t, err)
			for slice := 1; slice <= 5; slice++ {
				rolling.Advance()
				fresh, err := NewModuloTables(tc.min, tc.max, types.Step(int64(slice)*tc.min))
				require.NoError(t, err)
				for d := int64(0); d < rolling.Span(); d++ {
					require.Equal(t, fresh.Modulus(d), rolling.Modulus(d),
						"slice %d offset %d", slice, d)
					require.Equal(t, fresh.SliceModulus(d), rolling.SliceModulus(d),
						"slice %d offset %d", slice, d)
				}
			}
		})
	}
}
