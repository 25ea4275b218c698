package workhour

import "time"

// Config is the per-organization work-hour policy consumed by punch
// ingestion and hour calculation. Resolved from the organization's override
// row when one exists, otherwise from application defaults — never from
// hard-coded module constants, so tenants can diverge.
type Config struct {
	GracePeriodMinutes        int
	OvertimeThresholdMinutes  int
	UnderTimeThresholdMinutes int
	NoTimeInDeductionMinutes  int
	NoTimeOutDeductionMinutes int
	AllowEarlyCheckIn         bool
}

func (c Config) GracePeriod() time.Duration {
	return time.Duration(c.GracePeriodMinutes) * time.Minute
}

func (c Config) OvertimeThreshold() time.Duration {
	return time.Duration(c.OvertimeThresholdMinutes) * time.Minute
}

func (c Config) UnderTimeThreshold() time.Duration {
	return time.Duration(c.UnderTimeThresholdMinutes) * time.Minute
}
