package attendance

import "context"

// Service defines the punch ingestion surface.
type Service interface {
	// IngestDeviceReport classifies a device's punch batch into check-ins and
	// check-outs, creating or updating attendance records. Per-punch errors
	// are tolerated; the summary reports how the batch fared.
	IngestDeviceReport(ctx context.Context, report DeviceReport) (IngestSummary, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	ListAttendance(ctx context.Context, filter Filter) (ListResponse, error)
}
