package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAttendanceIndex(t *testing.T) {
	t.Parallel()

	idx, err := BuildAttendanceIndex(attendanceTable(), mustSettings(t))
	require.NoError(t, err)

	assert.Equal(t, "Person ID", idx.PersonColumn)
	assert.Equal(t, "On Premises", idx.MarkerColumn)

	// "42" is present once and blank once; any present sighting wins.
	assert.True(t, idx.IsPresent("42"))
	assert.True(t, idx.IsPresent("100"))
	assert.False(t, idx.IsPresent("101"))
	assert.True(t, idx.Seen("101"))
	assert.False(t, idx.Seen("555"))
	assert.False(t, idx.IsPresent(""))

	assert.Equal(t, AttendanceStats{
		TotalRows:     8,
		EmptyIDRows:   1,
		UniqueIDs:     6,
		PresentIDs:    5,
		DuplicateRows: 1,
	}, idx.Stats)
	assert.Equal(t, map[string]int{"X": 6, "": 2}, idx.MarkerCounts)
}

func TestAttendanceOrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	s := mustSettings(t)
	headers := []string{"Person ID", "On Premises"}
	first, err := BuildAttendanceIndex(table(headers, []string{"7", "X"}, []string{"7", ""}), s)
	require.NoError(t, err)
	second, err := BuildAttendanceIndex(table(headers, []string{"7", ""}, []string{"7", "X"}), s)
	require.NoError(t, err)

	assert.True(t, first.IsPresent("7"))
	assert.True(t, second.IsPresent("7"))
}

func TestBuildAttendanceIndexMissingColumn(t *testing.T) {
	t.Parallel()

	_, err := BuildAttendanceIndex(table([]string{"Person ID", "Status"}), mustSettings(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRequiredColumn))

	var mce *MissingColumnError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, "time feed", mce.Feed)
	assert.Equal(t, "On Premises", mce.Field)
}

func TestNilIndexes(t *testing.T) {
	t.Parallel()

	var a *AttendanceIndex
	var v *VacationIndex
	assert.False(t, a.IsPresent("1"))
	assert.False(t, a.Seen("1"))
	assert.False(t, v.IsOnLeave("1"))
}

func TestBuildVacationIndex(t *testing.T) {
	t.Parallel()

	t.Run("paid and unpaid hours", func(t *testing.T) {
		idx := BuildVacationIndex(leaveTable())
		assert.True(t, idx.IsOnLeave("101"))
		assert.True(t, idx.IsOnLeave("102"))
		assert.False(t, idx.IsOnLeave("100"))
		assert.Empty(t, idx.Warnings)
		assert.Equal(t, VacationStats{TotalRows: 3, OnLeaveIDs: 2}, idx.Stats)
	})

	t.Run("formatted hours and alternate id header", func(t *testing.T) {
		idx := BuildVacationIndex(table(
			[]string{"Person Number", "Vacation"},
			[]string{"00017", "1,5"},
			[]string{"", "8"},
		))
		assert.True(t, idx.IsOnLeave("17"))
		assert.Equal(t, 1, idx.Stats.EmptyIDRows)
		assert.Len(t, idx.Warnings, 1)
	})

	t.Run("missing id column", func(t *testing.T) {
		idx := BuildVacationIndex(table([]string{"Name", "Vacation"}, []string{"A", "8"}))
		assert.Empty(t, idx.OnLeave)
		require.Len(t, idx.Warnings, 1)
		assert.Contains(t, idx.Warnings[0], "no vacation exclusions applied")
	})

	t.Run("no hours columns", func(t *testing.T) {
		idx := BuildVacationIndex(table([]string{"Employee ID", "Sick"}, []string{"1", "8"}))
		assert.Empty(t, idx.OnLeave)
		require.Len(t, idx.Warnings, 1)
	})
}
