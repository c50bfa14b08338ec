package xr

// Surface is an opaque drawable handle allocated by the graphics layer.
// The device-abstraction core never inspects it; the simulated device
// returns it unmodified.
type Surface uint64

// Device is the abstract per-session device contract. Real drivers and
// the simulated device in xr/headless implement the same interface.
type Device interface {
	// FloorTransform returns a snapshot of the current floor transform,
	// or nil before floor calibration.
	FloorTransform() *RigidTransform[Native, Floor]

	// Views returns the session's current view configuration.
	Views() Views

	// WaitForAnimationFrame blocks until the next frame is due and
	// returns the assembled frame, or nil once the device can no longer
	// produce frames.
	WaitForAnimationFrame() *Frame

	// RenderAnimationFrame submits a frame's drawable surface and
	// returns it once the device is done with it.
	RenderAnimationFrame(surface Surface) Surface

	// InitialInputs returns the inputs already connected at session
	// start.
	InitialInputs() []InputSource

	// SetEventDest attaches the session's event sink. Events raised
	// before attachment are flushed to it in original order.
	SetEventDest(sink EventSink)

	// Quit emits a session-end event.
	Quit()

	// SetQuitter hands the device a handle for requesting session
	// shutdown.
	SetQuitter(q *Quitter)

	// UpdateClipPlanes replaces the near/far clip distances used for
	// projection derivation.
	UpdateClipPlanes(near, far float64)

	// GrantedFeatures returns the feature list granted at negotiation.
	GrantedFeatures() []string

	// RequestHitTest registers a persistent spatial query.
	RequestHitTest(source HitTestSource)

	// CancelHitTest removes a spatial query, pending or committed.
	CancelHitTest(id HitTestID)
}

// Discovery advertises whether a backend can satisfy a session mode and
// produces device actors bound to it.
type Discovery interface {
	// SupportsSession reports whether the backend can host a session of
	// the given mode.
	SupportsSession(mode SessionMode) bool

	// RequestSession negotiates features and spawns a device actor via
	// the builder. Fails with ErrNoMatchingDevice when SupportsSession
	// is false.
	RequestSession(mode SessionMode, init SessionInit, builder SessionBuilder) (*Session, error)
}
