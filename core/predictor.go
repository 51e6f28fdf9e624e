package core

// Predictor adapts a workload fingerprint to a cycle count. It is the one
// extension point that may block on I/O
// (core/predictor/remote); core/predictor/local is CPU-bound. Predictor
// implementations must be safe for concurrent use: CostEngine is re-entrant
// and trivially parallel across workloads given a shared Predictor and
// DeviceValues registry.
type Predictor interface {
	// Predict returns a cycle count or one of the reserved ErrorCode
	// sentinels (IsError reports which).
	Predict(fp Fingerprint, op Operation) Result
	// IsAvailable reports whether the predictor is currently able to serve
	// requests (e.g. a remote profiler that failed its last health check).
	IsAvailable() bool
}
