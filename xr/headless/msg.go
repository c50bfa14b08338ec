package headless

import "github.com/xrsim/xrsim/xr"

// DeviceMsg is the sealed union of control commands consumed by the
// device's control loop. Commands targeting an absent viewer origin,
// floor, or input id are silent no-ops: the simulated device favors
// availability over strict validation.
type DeviceMsg interface{ deviceMsg() }

// SetWorldMsg replaces the world geometry.
type SetWorldMsg struct {
	World xr.World
}

// ClearWorldMsg removes the world geometry.
type ClearWorldMsg struct{}

// SetViewerOriginMsg replaces the viewer origin; nil marks the viewer
// untracked.
type SetViewerOriginMsg struct {
	Origin *xr.RigidTransform[xr.Viewer, xr.Native]
}

// SetFloorOriginMsg replaces the floor calibration. The device stores the
// inverse as its floor transform; nil clears the calibration. Sets the
// floor-dirty flag either way.
type SetFloorOriginMsg struct {
	Origin *xr.RigidTransform[xr.Floor, xr.Native]
}

// SetViewsMsg replaces the raw view configuration and sets the view-dirty
// flag.
type SetViewsMsg struct {
	Views ViewsInit
}

// VisibilityChangeMsg emits a visibility-change event immediately.
type VisibilityChangeMsg struct {
	Visibility xr.Visibility
}

// AddInputSourceMsg inserts a new input registry entry (active, not
// clicking) and emits an add-input event.
type AddInputSourceMsg struct {
	Init InputInit
}

// MessageInputSourceMsg routes a sub-command to the input with the given
// id; unknown ids are ignored.
type MessageInputSourceMsg struct {
	ID  xr.InputID
	Msg InputMsg
}

// DisconnectMsg marks the device disconnected, fires the quit callback if
// set, replies on Ack, and terminates the control loop.
type DisconnectMsg struct {
	Ack chan<- struct{}
}

func (SetWorldMsg) deviceMsg()           {}
func (ClearWorldMsg) deviceMsg()         {}
func (SetViewerOriginMsg) deviceMsg()    {}
func (SetFloorOriginMsg) deviceMsg()     {}
func (SetViewsMsg) deviceMsg()           {}
func (VisibilityChangeMsg) deviceMsg()   {}
func (AddInputSourceMsg) deviceMsg()     {}
func (MessageInputSourceMsg) deviceMsg() {}
func (DisconnectMsg) deviceMsg()         {}

// InputMsg is the sealed union of per-input sub-commands.
type InputMsg interface{ inputMsg() }

// SetHandednessMsg updates the input's handedness and emits an
// update-input event.
type SetHandednessMsg struct {
	Handedness xr.Handedness
}

// SetProfilesMsg updates the input's profile strings and emits an
// update-input event.
type SetProfilesMsg struct {
	Profiles []string
}

// SetTargetRayModeMsg updates the input's target-ray mode and emits an
// update-input event.
type SetTargetRayModeMsg struct {
	Mode xr.TargetRayMode
}

// SetPointerOriginMsg updates the input's pointer transform. No event.
type SetPointerOriginMsg struct {
	Origin *xr.RigidTransform[xr.Input, xr.Native]
}

// SetGripOriginMsg updates the input's grip transform. No event.
type SetGripOriginMsg struct {
	Origin *xr.RigidTransform[xr.Input, xr.Native]
}

// TriggerSelectMsg drives the select gesture state machine. Ignored while
// the input is inactive.
type TriggerSelectMsg struct {
	Kind  xr.SelectKind
	Phase xr.SelectPhase
}

// DisconnectInputMsg deactivates the input and emits a remove-input
// event; a no-op if already inactive.
type DisconnectInputMsg struct{}

// ReconnectInputMsg reactivates the input and emits an add-input event; a
// no-op if already active. The input keeps its id across the cycle.
type ReconnectInputMsg struct{}

func (SetHandednessMsg) inputMsg()    {}
func (SetProfilesMsg) inputMsg()      {}
func (SetTargetRayModeMsg) inputMsg() {}
func (SetPointerOriginMsg) inputMsg() {}
func (SetGripOriginMsg) inputMsg()    {}
func (TriggerSelectMsg) inputMsg()    {}
func (DisconnectInputMsg) inputMsg()  {}
func (ReconnectInputMsg) inputMsg()   {}
