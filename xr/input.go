package xr

// InputID identifies one input source for the lifetime of a device,
// including across disconnect/reconnect cycles.
type InputID uint32

// Handedness of an input source.
type Handedness string

const (
	HandNone  Handedness = "none"
	HandLeft  Handedness = "left"
	HandRight Handedness = "right"
)

// TargetRayMode describes how an input source's target ray is produced.
type TargetRayMode string

const (
	TargetRayGaze           TargetRayMode = "gaze"
	TargetRayTrackedPointer TargetRayMode = "tracked-pointer"
	TargetRayScreen         TargetRayMode = "screen"
)

// InputSource describes one input device as advertised to the session.
type InputSource struct {
	ID            InputID
	Handedness    Handedness
	TargetRayMode TargetRayMode
	SupportsGrip  bool
	Profiles      []string
}

// InputFrame is the per-frame snapshot of one active input source.
// Origins are nil while the corresponding pose is untracked.
type InputFrame struct {
	ID              InputID
	TargetRayOrigin *RigidTransform[Input, Native]
	GripOrigin      *RigidTransform[Input, Native]
	Pressed         bool
	Squeezed        bool
}

// SelectKind distinguishes the primary (trigger) gesture from the squeeze
// gesture.
type SelectKind string

const (
	SelectKindSelect  SelectKind = "select"
	SelectKindSqueeze SelectKind = "squeeze"
)

// SelectPhase is the normalized phase of a select gesture. Downstream
// consumers only ever observe Start, End, and Select: a held press that
// ends is reported as Select (a completed selection), and a discrete
// pulse is expanded into a Start/Select pair.
type SelectPhase string

const (
	SelectStart  SelectPhase = "start"
	SelectEnd    SelectPhase = "end"
	SelectSelect SelectPhase = "select"
)
