package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchedule(start, end string) Schedule {
	return Schedule{
		ID:        "sched-1",
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime: start,
		EndTime:   end,
	}
}

func TestShiftWindow(t *testing.T) {
	t.Parallel()

	t.Run("day shift", func(t *testing.T) {
		t.Parallel()

		start, end, err := testSchedule("09:00:00", "17:00:00").ShiftWindow()
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC), end)
	})

	t.Run("night shift rolls the end over to the next day", func(t *testing.T) {
		t.Parallel()

		start, end, err := testSchedule("22:00:00", "06:00:00").ShiftWindow()
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 3, 3, 6, 0, 0, 0, time.UTC), end)
	})

	t.Run("unparseable time is a data invariant violation", func(t *testing.T) {
		t.Parallel()

		_, _, err := testSchedule("nine", "17:00:00").ShiftWindow()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidShiftTime)
	})
}

func TestMidpointRouting(t *testing.T) {
	t.Parallel()

	sched := testSchedule("09:00:00", "17:00:00")
	midpoint, err := sched.Midpoint()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC), midpoint)

	// 12:59 routes to check-in, 13:01 to check-out
	assert.True(t, time.Date(2026, 3, 2, 12, 59, 0, 0, time.UTC).Before(midpoint))
	assert.False(t, time.Date(2026, 3, 2, 13, 1, 0, 0, time.UTC).Before(midpoint))
}

func TestMidpointNightShift(t *testing.T) {
	t.Parallel()

	midpoint, err := testSchedule("22:00:00", "06:00:00").Midpoint()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 3, 2, 0, 0, 0, time.UTC), midpoint)
}
