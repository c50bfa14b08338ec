package xr

// Visibility of the session's output to the user.
type Visibility string

const (
	VisibilityVisible        Visibility = "visible"
	VisibilityVisibleBlurred Visibility = "visible-blurred"
	VisibilityHidden         Visibility = "hidden"
)

// Event is the sealed union of session events delivered to the event
// sink: visibility changes, input lifecycle, select gestures, and session
// end.
type Event interface{ isEvent() }

// VisibilityChangeEvent reports a change in session visibility.
type VisibilityChangeEvent struct {
	Visibility Visibility
}

// AddInputEvent reports a newly connected (or reconnected) input source.
type AddInputEvent struct {
	Source InputSource
}

// UpdateInputEvent reports a change to an input source's descriptor.
type UpdateInputEvent struct {
	ID     InputID
	Source InputSource
}

// RemoveInputEvent reports a disconnected input source.
type RemoveInputEvent struct {
	ID InputID
}

// SelectEvent reports a normalized select gesture phase, along with the
// frame snapshot taken when the gesture fired.
type SelectEvent struct {
	ID    InputID
	Kind  SelectKind
	Phase SelectPhase
	Frame Frame
}

// SessionEndEvent reports that the session has ended.
type SessionEndEvent struct{}

func (VisibilityChangeEvent) isEvent() {}
func (AddInputEvent) isEvent()         {}
func (UpdateInputEvent) isEvent()      {}
func (RemoveInputEvent) isEvent()      {}
func (SelectEvent) isEvent()           {}
func (SessionEndEvent) isEvent()       {}

// EventSink accepts session events. Deliver is called with the device's
// state lock held, so implementations must not block; channel-backed
// sinks should use a buffered channel sized for the expected burst.
type EventSink interface {
	Deliver(ev Event)
}

// ChannelSink adapts a Go channel to the EventSink contract.
type ChannelSink struct {
	C chan<- Event
}

func (s ChannelSink) Deliver(ev Event) {
	s.C <- ev
}

// EventBuffer is a two-state event destination: it buffers events raised
// before a sink is attached, then drains the buffer in original order and
// delivers directly from then on. The zero value is an empty buffering
// EventBuffer.
type EventBuffer struct {
	buffered []Event
	sink     EventSink
}

// Deliver forwards ev to the attached sink, or buffers it while no sink
// is attached.
func (b *EventBuffer) Deliver(ev Event) {
	if b.sink != nil {
		b.sink.Deliver(ev)
		return
	}
	b.buffered = append(b.buffered, ev)
}

// Upgrade attaches sink, first flushing every buffered event to it in the
// order raised.
func (b *EventBuffer) Upgrade(sink EventSink) {
	for _, ev := range b.buffered {
		sink.Deliver(ev)
	}
	b.buffered = nil
	b.sink = sink
}
