package xr

// FrameUpdateEventKind discriminates the per-frame update events.
type FrameUpdateEventKind string

const (
	FrameEventHitTestSourceAdded FrameUpdateEventKind = "hit-test-source-added"
	FrameEventUpdateViews        FrameUpdateEventKind = "update-views"
	FrameEventUpdateFloor        FrameUpdateEventKind = "update-floor"
)

// FrameUpdateEvent is one update folded into a frame's event list. Only
// the field matching Kind is set; a nil Floor on an update-floor event
// means the floor calibration was cleared.
type FrameUpdateEvent struct {
	Kind    FrameUpdateEventKind
	HitTest HitTestID
	Views   *Views
	Floor   *RigidTransform[Native, Floor]
}

// Frame is the per-tick bundle of pose, input, event, and hit-test data
// delivered to the session consumer.
type Frame struct {
	// Transform is the viewer pose, nil while the viewer is untracked.
	Transform *RigidTransform[Viewer, Native]
	// Inputs holds one entry per active input source.
	Inputs []InputFrame
	// Events are the frame's update events, in the fixed order
	// hit-test-source-added, update-views, update-floor.
	Events []FrameUpdateEvent
	// HitTestResults holds all hit-test results for the frame, in
	// per-source discovery order.
	HitTestResults []HitTestResult
	// TimeNs is the device timestamp of frame assembly, in nanoseconds.
	TimeNs int64
	// SentTimeNs is stamped by the transport when the frame is sent.
	SentTimeNs int64
}
