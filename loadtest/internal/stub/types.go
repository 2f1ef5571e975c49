package stub

import "time"

type SeedRequest struct {
	// GoneDevices answer 410 from now on.
	GoneDevices []string `json:"gone_devices"`
	// LatencyMs delays every push answer of the run.
	LatencyMs int `json:"latency_ms"`
}

type DeviceDeliveries struct {
	DeviceID     string    `json:"device_id"`
	Delivered    int       `json:"delivered"`
	Rejected     int       `json:"rejected"`
	LastPushedAt time.Time `json:"last_pushed_at"`
}

type DeliveriesResponse struct {
	RunID     string             `json:"run_id"`
	Delivered int                `json:"delivered"`
	Rejected  int                `json:"rejected"`
	Devices   []DeviceDeliveries `json:"devices"`
}
