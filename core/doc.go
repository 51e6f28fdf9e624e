// Package core provides the workload validation, memory-footprint, and
// operation-constraint engine that sits between a compiler-facing API and a
// learned regression model predicting NPU execution cost.
//
// # Reading Guide
//
// Start with these files to understand the data model and the request flow:
//   - tensor.go: device-typed tensors, bit-packed size math
//   - workload.go: the canonical per-operation descriptor (Workload)
//   - operation.go: its reversible abstract form (Operation)
//   - validator.go: the checklist that decides whether a Workload is legal
//   - cost.go: the engine orchestrating validate -> fingerprint -> predict
//
// # Architecture
//
// core defines interfaces and the shared data model; implementations live in
// sibling packages:
//   - core/ops/: per-OpType behavior (weight-shape deduction, memory
//     formulas, sparsity rules, ISI/OWT filters)
//   - core/devices/: per-Device valid-values tables (datatypes, channel
//     ranges, CMX size, alignment)
//   - core/predictor/local/: a coefficient-driven regressor
//   - core/predictor/remote/: an HTTP profiling client
//
// Sub-packages register their implementations via init() functions that set
// package-level factory variables (Behaviors, Devices), breaking the import
// cycle between core (interface owner) and its implementations.
package core
