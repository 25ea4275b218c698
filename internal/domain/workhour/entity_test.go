package workhour

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeTotals(t *testing.T) {
	t.Parallel()

	f := FinalWorkHour{
		RegularDayHours:         decimal.RequireFromString("7.83"),
		RegularDayOvertimeHours: decimal.RequireFromString("1.00"),
		RestDayHours:            decimal.RequireFromString("0.50"),
	}
	f.RecomputeTotals()

	assert.Equal(t, "8.33", f.TotalRegularHours.StringFixed(2))
	assert.Equal(t, "1.00", f.TotalOvertimeHours.StringFixed(2))
	assert.Equal(t, "9.33", f.TotalHours.StringFixed(2))
	require.NoError(t, f.ValidateTotals())
}

func TestValidateTotalsDetectsDrift(t *testing.T) {
	t.Parallel()

	f := FinalWorkHour{
		RegularDayHours: decimal.RequireFromString("8.00"),
	}
	f.RecomputeTotals()
	require.NoError(t, f.ValidateTotals())

	f.TotalHours = decimal.RequireFromString("7.00")
	assert.ErrorIs(t, f.ValidateTotals(), ErrTotalsMismatch)
}

func TestEnsureTotalsDerivesWhenZero(t *testing.T) {
	t.Parallel()

	f := FinalWorkHour{
		SpecialHolidayHours:         decimal.RequireFromString("6.00"),
		SpecialHolidayOvertimeHours: decimal.RequireFromString("2.00"),
	}
	f.EnsureTotals()

	assert.Equal(t, "8.00", f.TotalHours.StringFixed(2))

	// already-set totals are left alone
	f.TotalHours = decimal.RequireFromString("8.00")
	f.SpecialHolidayHours = decimal.RequireFromString("5.00")
	f.EnsureTotals()
	assert.Equal(t, "8.00", f.TotalHours.StringFixed(2))
}
