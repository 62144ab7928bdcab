// Package monitor samples host telemetry and renders it as a fixed text
// report, once per cycle.
//
// # Cycle
//
// A Loop repeats the same five steps until its context is cancelled:
//
//  1. Builder.Build reads the SensorSource and the GPU device into a Snapshot
//  2. Renderer.Render turns the Snapshot into text
//  3. the terminal is cleared and the cursor homed
//  4. the text is written to stdout
//  5. the Sleeper waits for the configured interval
//
// Sampling happens before the clear so the previous frame stays on screen
// while slow sensors are queried.
//
// # Failures
//
// Host sensors never fail a cycle: missing values fall back to fixed
// placeholders (Default_System_Name, XXXX, N/A). GPU failures follow the
// GPUFailurePolicy. Under GPUDegrade the failed field renders N/A for that
// cycle; under GPUFatal the loop stops with an ErrGPU error.
//
// # Backends
//
// SensorSource and GPUDriver are interfaces. Production implementations live
// in the sensors and gpu subpackages; tests use in-memory fakes.
package monitor
