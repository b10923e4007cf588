package register

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, s *Store[int], tid, start, end int) []int {
	t.Helper()
	var out []int
	for {
		_, rec, ok := s.Next(tid, start, end)
		if !ok {
			return out
		}
		out = append(out, rec)
	}
}

func TestStoreFIFOPerProducer(t *testing.T) {
	t.Parallel()
	s := New[int](2)
	s.Append(0, 0, 10)
	s.Append(0, 0, 11)
	s.Append(1, 0, 20)
	s.Append(0, 0, 12)
	require.Equal(t, 4, s.Len())

	s.ResetEntryPoint(0)
	s.RestoreEntryPoint(0)
	got := collect(t, s, 0, 0, 1)
	// producer 0's stream stays in append order; producer streams are
	// walked one after the other
	require.Equal(t, []int{10, 11, 12, 20}, got)
}

func TestStoreRankRangeFilter(t *testing.T) {
	t.Parallel()
	s := New[int](1)
	s.Append(0, 0, 100)
	s.Append(0, 2, 102)
	s.Append(0, 1, 101)
	s.Append(0, 2, 103)

	s.ResetEntryPoint(0)
	s.RestoreEntryPoint(0)
	require.Equal(t, []int{102, 103}, collect(t, s, 0, 2, 3))
	// records outside the range stayed pending
	s.RestoreEntryPoint(0)
	require.Equal(t, []int{100, 101}, collect(t, s, 0, 0, 2))
}

func TestStoreNextReturnsRank(t *testing.T) {
	t.Parallel()
	s := New[int](1)
	s.Append(0, 3, 7)
	s.ResetEntryPoint(0)
	s.RestoreEntryPoint(0)
	rank, rec, ok := s.Next(0, 0, 4)
	require.True(t, ok)
	require.Equal(t, 3, rank)
	require.Equal(t, 7, rec)
}

// A rejected record pins the saved entry point: the next round replays it
// first, and records consumed after the reject are not replayed.
func TestStoreRejectPinsEntryPoint(t *testing.T) {
	t.Parallel()
	s := New[int](1)
	for i := 0; i < 4; i++ {
		s.Append(0, 0, i)
	}
	s.ResetEntryPoint(0)

	s.RestoreEntryPoint(0)
	_, rec, ok := s.Next(0, 0, 1)
	require.True(t, ok)
	require.Equal(t, 0, rec)
	_, rec, ok = s.Next(0, 0, 1)
	require.True(t, ok)
	require.Equal(t, 1, rec)
	s.RejectLast(0)
	s.SaveEntryPoint(0)
	// the cursor keeps going past the reject within the round
	_, rec, ok = s.Next(0, 0, 1)
	require.True(t, ok)
	require.Equal(t, 2, rec)
	s.SaveEntryPoint(0)

	// next round resumes at the rejected record and skips the consumed one
	s.RestoreEntryPoint(0)
	require.Equal(t, []int{1, 3}, collect(t, s, 0, 0, 1))
	s.SaveEntryPoint(0)

	s.RestoreEntryPoint(0)
	require.Empty(t, collect(t, s, 0, 0, 1))
}

func TestStoreRejectWithoutNext(t *testing.T) {
	t.Parallel()
	s := New[int](1)
	s.RejectLast(0) // no-op
	s.Append(0, 0, 1)
	s.ResetEntryPoint(0)
	s.RestoreEntryPoint(0)
	_, _, ok := s.Next(0, 0, 1)
	require.True(t, ok)
	s.RejectLast(0)
	s.RejectLast(0) // second reject of the same handout is a no-op
	s.SaveEntryPoint(0)
	s.RestoreEntryPoint(0)
	require.Equal(t, []int{1}, collect(t, s, 0, 0, 1))
}

func TestStoreSaveWithoutRejectAdvances(t *testing.T) {
	t.Parallel()
	s := New[int](1)
	s.Append(0, 0, 1)
	s.Append(0, 0, 2)
	s.ResetEntryPoint(0)
	s.RestoreEntryPoint(0)
	_, _, ok := s.Next(0, 0, 1)
	require.True(t, ok)
	s.SaveEntryPoint(0)

	s.RestoreEntryPoint(0)
	require.Equal(t, []int{2}, collect(t, s, 0, 0, 1))
}

func TestStoreClear(t *testing.T) {
	t.Parallel()
	s := New[int](2)
	s.Append(0, 0, 1)
	s.Append(1, 0, 2)
	s.Clear(0)
	require.Equal(t, 1, s.Len())
	s.ResetEntryPoint(0)
	s.RestoreEntryPoint(0)
	require.Equal(t, []int{2}, collect(t, s, 0, 0, 1))
}

// Two cursors with disjoint rank ranges drain the same queues without
// stepping on each other.
func TestStoreDisjointCursors(t *testing.T) {
	t.Parallel()
	s := New[int](2)
	for i := 0; i < 10; i++ {
		s.Append(i%2, i%2, i)
	}
	for tid := 0; tid < 2; tid++ {
		s.ResetEntryPoint(tid)
		s.RestoreEntryPoint(tid)
	}
	even := collect(t, s, 0, 0, 1)
	odd := collect(t, s, 1, 1, 2)
	require.ElementsMatch(t, []int{0, 2, 4, 6, 8}, even)
	require.ElementsMatch(t, []int{1, 3, 5, 7, 9}, odd)
}
