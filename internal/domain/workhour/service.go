package workhour

import "context"

// Recalculator is the single entry point for work-hour computation. Both the
// batch job path and the single-attendance approval path go through it, which
// is what keeps concurrent recomputation safe: identical inputs always
// produce identical upserted values.
type Recalculator interface {
	// RecalculateAttendance loads the attendance with its schedule, config
	// and approved exceptions, computes the categorized breakdown and
	// upserts the FinalWorkHour under the given batch token.
	RecalculateAttendance(ctx context.Context, attendanceID, batchID string, processedBy *string) (FinalWorkHour, error)
}

// Service exposes the work-hour read surface alongside recalculation.
type Service interface {
	Recalculator

	GetByAttendance(ctx context.Context, attendanceID string) (FinalWorkHour, error)
}
