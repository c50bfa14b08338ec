// Package xr provides the device-abstraction core of a spatial-computing
// session API: typed coordinate spaces, the session and device contracts,
// and the per-frame data delivered to session consumers.
//
// # Reading Guide
//
// Start with these files to understand the model:
//   - spaces.go: zero-sized coordinate frame tags
//   - transform.go: rigid transforms and projections typed by (source, target) space
//   - view.go: per-eye views, the Views configuration union, viewports
//   - device.go: the abstract Device and Discovery contracts implemented by drivers
//   - frame.go: the per-tick Frame bundle handed to the session consumer
//
// # Architecture
//
// The xr package defines value types and contracts only; device
// implementations live in sub-packages:
//   - xr/headless/: the simulated (hardware-free) device
//
// Space tags carry no runtime data. A RigidTransform[A, B] composes only
// with a RigidTransform[B, C]; mismatched compositions are compile errors,
// never runtime checks. CastTransform and friends re-tag values without
// touching the numbers and are the documented trust boundary.
package xr
