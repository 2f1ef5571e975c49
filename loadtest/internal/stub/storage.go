package stub

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"sync"
	"time"
)

type run struct {
	gone    map[string]bool
	latency time.Duration
	devices map[string]*DeviceDeliveries
}

func newRun() *run {
	return &run{
		gone:    make(map[string]bool),
		devices: make(map[string]*DeviceDeliveries),
	}
}

// DeliveryStorage keeps per-run push gateway state in memory.
type DeliveryStorage struct {
	mu   sync.Mutex
	runs map[string]*run // runID -> state
}

func NewDeliveryStorage() *DeliveryStorage {
	return &DeliveryStorage{
		runs: make(map[string]*run),
	}
}

func (s *DeliveryStorage) runLocked(runID string) *run {
	r, ok := s.runs[runID]
	if !ok {
		r = newRun()
		s.runs[runID] = r
	}
	return r
}

func (s *DeliveryStorage) Reset(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, runID)
}

func (s *DeliveryStorage) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = make(map[string]*run)
}

func (s *DeliveryStorage) Seed(runID string, goneDevices []string, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.runLocked(runID)
	for _, d := range goneDevices {
		r.gone[d] = true
	}
	r.latency = latency
}

// Accept records one push and reports whether the device is still valid, together with
// the latency configured for the run.
func (s *DeliveryStorage) Accept(runID, deviceID string, at time.Time) (accepted bool, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.runLocked(runID)
	d, ok := r.devices[deviceID]
	if !ok {
		d = &DeviceDeliveries{DeviceID: deviceID}
		r.devices[deviceID] = d
	}
	d.LastPushedAt = at

	if r.gone[deviceID] {
		d.Rejected++
		return false, r.latency
	}
	d.Delivered++
	return true, r.latency
}

func (s *DeliveryStorage) Deliveries(runID string) DeliveriesResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := DeliveriesResponse{RunID: runID, Devices: []DeviceDeliveries{}}
	r, ok := s.runs[runID]
	if !ok {
		return resp
	}

	for _, d := range r.devices {
		resp.Devices = append(resp.Devices, *d)
		resp.Delivered += d.Delivered
		resp.Rejected += d.Rejected
	}
	slices.SortFunc(resp.Devices, func(a, b DeviceDeliveries) int {
		return cmp.Compare(a.DeviceID, b.DeviceID)
	})

	return resp
}

func generateMessageID(runID, deviceID string, at time.Time) string {
	input := fmt.Sprintf("%s-%s-%d", runID, deviceID, at.UnixNano())
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:8])
}
