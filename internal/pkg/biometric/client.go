package biometric

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DeviceGateway talks to the biometric device fleet. Ingestion clears a
// device's punch buffer after a report is fully processed so the next report
// starts empty.
type DeviceGateway interface {
	ClearDeviceRecords(ctx context.Context, deviceID string) error
}

// HTTPGateway drives devices through the fleet's HTTP bridge.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGateway(baseURL string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ClearDeviceRecords implements DeviceGateway.
func (g *HTTPGateway) ClearDeviceRecords(ctx context.Context, deviceID string) error {
	url := fmt.Sprintf("%s/devices/%s/records", g.baseURL, deviceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build clear-records request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to clear device records for %s: %w", deviceID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("clear device records for %s returned status %d", deviceID, resp.StatusCode)
	}

	return nil
}
