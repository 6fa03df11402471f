// Package sim provides the discrete-event kernel shared by the service-system
// simulators.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - event.go / event_queue.go: time-ordered events with insertion-order tie-break
//   - driver.go: the event loop (integrate, then mutate, then trace)
//   - stats.go: time-weighted gauges and level histograms
//   - output.go: the rows/series/metrics projection every variant returns
//
// # Architecture
//
// The sim package defines the kernel; the models live in sub-packages:
//   - sim/rng/: linear congruential generators and seed partitioning
//   - sim/dist/: inverse-transform samplers and the DistSpec factory
//   - sim/serie/: two stations in tandem
//   - sim/banco/: N identical servers sharing one queue
//   - sim/estacionamiento/: C slots, no queue, blocked arrivals are lost
//   - sim/sweep/: parallel independent replications with confidence intervals
//   - sim/trace/: per-event trace recording
//
// Clock values are minutes; every value that leaves a model (rows, series,
// metrics) is in hours.
package sim
