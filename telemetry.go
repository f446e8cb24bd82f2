// telemetry.go - mutex-guarded pipeline statistics

package main

import "sync"

// Telemetry is a snapshot of the pipeline's running statistics, safe to
// copy by value.
type Telemetry struct {
	PeakInputDB      float32
	PeakOutputDB     float32
	CPUUsage         float32 // percent, EMA-smoothed
	LatencyMs        float32
	SamplesProcessed uint64
	NaNGuardHits     uint64
}

// telemetryStore guards a Telemetry snapshot behind a mutex, written by
// the audio thread after each callback and read by the control thread.
type telemetryStore struct {
	mu   sync.Mutex
	data Telemetry
}

func newTelemetryStore() *telemetryStore {
	return &telemetryStore{}
}

func (t *telemetryStore) snapshot() Telemetry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data
}

func (t *telemetryStore) update(fn func(*Telemetry)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.data)
}

// updateCPUUsage folds a new CPU-time-percentage sample into the running
// exponential moving average using the 0.9/0.1 weighting the pipeline has
// always used.
func updateCPUUsage(current, sample float32) float32 {
	return current*0.9 + sample*0.1
}
