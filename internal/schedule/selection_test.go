package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_FirstToggleSelects(t *testing.T) {
	sel := NewSelection()

	require.NoError(t, sel.Toggle("14:00", SlotFree))
	assert.Equal(t, []string{"14:00"}, sel.Times())
}

func TestSelection_AdjacentAppendAccepted(t *testing.T) {
	sel := NewSelection()

	require.NoError(t, sel.Toggle("14:00", SlotFree))
	require.NoError(t, sel.Toggle("14:30", SlotFree))
	assert.Equal(t, []string{"14:00", "14:30"}, sel.Times())
}

func TestSelection_NonAdjacentRejected(t *testing.T) {
	sel := NewSelection()

	require.NoError(t, sel.Toggle("14:00", SlotFree))
	require.NoError(t, sel.Toggle("14:30", SlotFree))

	err := sel.Toggle("15:30", SlotFree)
	assert.ErrorIs(t, err, ErrNotContiguous)
	assert.Equal(t, []string{"14:00", "14:30"}, sel.Times(), "rejected toggle must not change the selection")
}

func TestSelection_PrependRejected(t *testing.T) {
	sel := NewSelection()

	require.NoError(t, sel.Toggle("14:00", SlotFree))

	// Appending only happens at the tail; the slot before the run is rejected.
	err := sel.Toggle("13:30", SlotFree)
	assert.ErrorIs(t, err, ErrNotContiguous)
	assert.Equal(t, []string{"14:00"}, sel.Times())
}

func TestSelection_OccupiedToggleIsNoOp(t *testing.T) {
	sel := NewSelection()

	require.NoError(t, sel.Toggle("14:00", SlotPending))
	assert.True(t, sel.IsEmpty())

	require.NoError(t, sel.Toggle("14:00", SlotApproved))
	assert.True(t, sel.IsEmpty())

	require.NoError(t, sel.Toggle("14:00", SlotFree))
	require.NoError(t, sel.Toggle("14:30", SlotPending))
	assert.Equal(t, []string{"14:00"}, sel.Times())
}

func TestSelection_DeselectTruncatesSuffix(t *testing.T) {
	sel := NewSelection()

	for _, label := range []string{"14:00", "14:30", "15:00", "15:30"} {
		require.NoError(t, sel.Toggle(label, SlotFree))
	}

	// Deselecting 14:30 drops it and everything after it.
	require.NoError(t, sel.Toggle("14:30", SlotFree))
	assert.Equal(t, []string{"14:00"}, sel.Times())
}

func TestSelection_DeselectFirstClearsAll(t *testing.T) {
	sel := NewSelection()

	require.NoError(t, sel.Toggle("09:00", SlotFree))
	require.NoError(t, sel.Toggle("09:30", SlotFree))

	require.NoError(t, sel.Toggle("09:00", SlotFree))
	assert.True(t, sel.IsEmpty())
}

func TestSelection_ReselectAfterTruncate(t *testing.T) {
	sel := NewSelection()

	for _, label := range []string{"10:00", "10:30", "11:00"} {
		require.NoError(t, sel.Toggle(label, SlotFree))
	}
	require.NoError(t, sel.Toggle("10:30", SlotFree))

	// The tail is 10:00 again, so 10:30 is the only accepted append.
	assert.ErrorIs(t, sel.Toggle("11:00", SlotFree), ErrNotContiguous)
	require.NoError(t, sel.Toggle("10:30", SlotFree))
	assert.Equal(t, []string{"10:00", "10:30"}, sel.Times())
}

func TestSelection_Reset(t *testing.T) {
	sel := NewSelection()

	require.NoError(t, sel.Toggle("14:00", SlotFree))
	require.NoError(t, sel.Toggle("14:30", SlotFree))

	sel.Reset()
	assert.True(t, sel.IsEmpty())
	assert.Equal(t, 0, sel.Len())
}

func TestSelection_AlwaysContiguous(t *testing.T) {
	sel := NewSelection()
	labels := TimeSlots()

	// Drive the machine through a mix of accepted and rejected toggles and
	// check the contiguity invariant after every step.
	moves := []string{"14:00", "14:30", "16:00", "15:00", "14:30", "14:30", "15:00", "00:00"}
	for _, label := range moves {
		_ = sel.Toggle(label, SlotFree)

		times := sel.Times()
		for i := 1; i < len(times); i++ {
			assert.Equal(t, SlotIndex(times[i-1])+1, SlotIndex(times[i]),
				"selection %v is not contiguous", times)
		}
		for _, chosen := range times {
			assert.Contains(t, labels, chosen)
		}
	}
}
