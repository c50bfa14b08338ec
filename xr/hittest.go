package xr

import "gonum.org/v1/gonum/spatial/r3"

// HitTestID identifies one registered hit-test source. IDs are assigned
// monotonically by the session handle.
type HitTestID uint32

// Ray is an origin and direction in space S. Direction need not be
// normalized.
type Ray[S Space] struct {
	Origin    r3.Vec
	Direction r3.Vec
}

// BaseSpaceKind names the base frame a space descriptor is anchored to.
type BaseSpaceKind string

const (
	BaseLocal     BaseSpaceKind = "local"
	BaseFloor     BaseSpaceKind = "floor"
	BaseViewer    BaseSpaceKind = "viewer"
	BaseTargetRay BaseSpaceKind = "target-ray"
	BaseGrip      BaseSpaceKind = "grip"
)

// BaseSpace selects the runtime base frame for a space descriptor. Input
// is only meaningful for the target-ray and grip kinds.
type BaseSpace struct {
	Kind  BaseSpaceKind
	Input InputID
}

// SpaceDescriptor declares the space a hit-test ray is expressed in: a
// base frame resolved at runtime, plus a fixed offset from it. The offset
// is tagged ApiSpace→ApiSpace because its true target frame is only known
// once the base resolves.
type SpaceDescriptor struct {
	Base   BaseSpace
	Offset RigidTransform[ApiSpace, ApiSpace]
}

// HitTestSource is a persistent spatial query: a ray in a declared space,
// re-evaluated every frame against world regions matching the type filter.
type HitTestSource struct {
	ID    HitTestID
	Space SpaceDescriptor
	Ray   Ray[ApiSpace]
	Types EntityTypes
}

// HitTestResult is one ray/world intersection: the hit pose and the
// source that produced it.
type HitTestResult struct {
	ID    HitTestID
	Space RigidTransform[ApiSpace, Native]
}

// HitTestList tracks a session's hit-test sources. Sources are pending
// between request and the next commit, and evaluated every frame once
// committed. The zero value is an empty list.
type HitTestList struct {
	tests       []HitTestSource
	uncommitted []HitTestSource
}

// Request stores source as pending until the next CommitTests.
func (l *HitTestList) Request(source HitTestSource) {
	l.uncommitted = append(l.uncommitted, source)
}

// Cancel removes the source with the given id, pending or committed.
// Unknown ids are ignored.
func (l *HitTestList) Cancel(id HitTestID) {
	l.tests = removeSource(l.tests, id)
	l.uncommitted = removeSource(l.uncommitted, id)
}

func removeSource(sources []HitTestSource, id HitTestID) []HitTestSource {
	for i, s := range sources {
		if s.ID == id {
			return append(sources[:i], sources[i+1:]...)
		}
	}
	return sources
}

// CommitTests moves pending sources into the committed set and returns
// one hit-test-source-added event per newly committed source, for folding
// into the next frame's event list.
func (l *HitTestList) CommitTests() []FrameUpdateEvent {
	events := make([]FrameUpdateEvent, 0, len(l.uncommitted))
	for _, s := range l.uncommitted {
		events = append(events, FrameUpdateEvent{
			Kind:    FrameEventHitTestSourceAdded,
			HitTest: s.ID,
		})
		l.tests = append(l.tests, s)
	}
	l.uncommitted = nil
	return events
}

// Tests returns the committed sources for per-frame evaluation.
func (l *HitTestList) Tests() []HitTestSource {
	return l.tests
}
