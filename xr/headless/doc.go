// Package headless implements a simulated XR device that exercises the
// full session protocol without hardware: capability negotiation,
// per-frame pose/view delivery, input-source lifecycle, and ray-based
// hit-testing against synthetic world geometry.
//
// Two execution contexts share one device state for a session's lifetime.
// The control loop (started by Connect) consumes DeviceMsg commands
// sequentially and is the sole writer of floor/viewer/views/world state;
// the device actor reads the state once per animation frame and writes
// only session-scoped pieces (event sink, quitter, dirty flags, its own
// clip planes and hit-test registry). A single mutex
// guards the whole record, and all of frame assembly, including hit-test
// intersection, runs under it. That serializes frame production against
// command delivery, a deliberate simplicity trade-off for a simulated
// device.
package headless
