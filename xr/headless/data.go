package headless

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xrsim/xrsim/xr"
)

// deviceData is the shared mutable state of one simulated device. One
// instance is created per device connection and shared between the
// control loop and every device actor bound to it. mu guards the entire
// record; there is no finer-grained locking.
type deviceData struct {
	mu sync.Mutex

	floorTransform    *xr.RigidTransform[xr.Native, xr.Floor]
	viewerOrigin      *xr.RigidTransform[xr.Viewer, xr.Native]
	supportedFeatures []string
	views             ViewsInit
	needsViewUpdate   bool
	needsFloorUpdate  bool
	inputs            []inputInfo
	events            xr.EventBuffer
	quitter           *xr.Quitter
	disconnected      bool
	world             *xr.World
}

// inputInfo is one input registry entry. Entries are never physically
// deleted: disconnect clears active so a later reconnect can reuse the
// same id.
type inputInfo struct {
	source   xr.InputSource
	active   bool
	pointer  *xr.RigidTransform[xr.Input, xr.Native]
	grip     *xr.RigidTransform[xr.Input, xr.Native]
	clicking bool
}

// runLoop sequentially applies commands to the shared state until a
// disconnect command or channel closure ends the loop.
func runLoop(msgs <-chan DeviceMsg, data *deviceData) {
	for msg := range msgs {
		if !data.handleMsg(msg) {
			return
		}
	}
}

// handleMsg applies one command under the state lock. It returns false
// when the control loop should terminate.
func (d *deviceData) handleMsg(msg DeviceMsg) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	logrus.Debugf("headless: applying %T", msg)
	switch m := msg.(type) {
	case SetWorldMsg:
		world := m.World
		d.world = &world
	case ClearWorldMsg:
		d.world = nil
	case SetViewerOriginMsg:
		d.viewerOrigin = m.Origin
	case SetFloorOriginMsg:
		if m.Origin != nil {
			floor := m.Origin.Inverse()
			d.floorTransform = &floor
		} else {
			d.floorTransform = nil
		}
		d.needsFloorUpdate = true
	case SetViewsMsg:
		d.views = m.Views
		d.needsViewUpdate = true
	case VisibilityChangeMsg:
		d.events.Deliver(xr.VisibilityChangeEvent{Visibility: m.Visibility})
	case AddInputSourceMsg:
		d.inputs = append(d.inputs, inputInfo{
			source:  m.Init.Source,
			active:  true,
			pointer: m.Init.PointerOrigin,
			grip:    m.Init.GripOrigin,
		})
		d.events.Deliver(xr.AddInputEvent{Source: m.Init.Source})
	case MessageInputSourceMsg:
		if input := d.findInput(m.ID); input != nil {
			d.handleInputMsg(input, m.Msg)
		}
	case DisconnectMsg:
		d.disconnected = true
		d.quitter.Quit()
		if m.Ack != nil {
			m.Ack <- struct{}{}
		}
		return false
	}
	return true
}

func (d *deviceData) findInput(id xr.InputID) *inputInfo {
	for i := range d.inputs {
		if d.inputs[i].source.ID == id {
			return &d.inputs[i]
		}
	}
	return nil
}

// handleInputMsg runs the per-input state machine: Active-Idle,
// Active-Clicking, Inactive. Caller holds the state lock.
func (d *deviceData) handleInputMsg(input *inputInfo, msg InputMsg) {
	id := input.source.ID
	switch m := msg.(type) {
	case SetHandednessMsg:
		input.source.Handedness = m.Handedness
		d.events.Deliver(xr.UpdateInputEvent{ID: id, Source: input.source})
	case SetProfilesMsg:
		input.source.Profiles = m.Profiles
		d.events.Deliver(xr.UpdateInputEvent{ID: id, Source: input.source})
	case SetTargetRayModeMsg:
		input.source.TargetRayMode = m.Mode
		d.events.Deliver(xr.UpdateInputEvent{ID: id, Source: input.source})
	case SetPointerOriginMsg:
		input.pointer = m.Origin
	case SetGripOriginMsg:
		input.grip = m.Origin
	case TriggerSelectMsg:
		if !input.active {
			return
		}
		wasClicking := input.clicking
		input.clicking = m.Phase == xr.SelectStart
		frame := d.frameLocked()
		switch m.Phase {
		case xr.SelectStart:
			d.events.Deliver(xr.SelectEvent{ID: id, Kind: m.Kind, Phase: xr.SelectStart, Frame: frame})
		case xr.SelectEnd:
			// A held gesture that ends is a completed selection, not a
			// bare end notification.
			if wasClicking {
				d.events.Deliver(xr.SelectEvent{ID: id, Kind: m.Kind, Phase: xr.SelectSelect, Frame: frame})
			} else {
				d.events.Deliver(xr.SelectEvent{ID: id, Kind: m.Kind, Phase: xr.SelectEnd, Frame: frame})
			}
		case xr.SelectSelect:
			// A discrete pulse expands into a synthetic start+complete
			// pair sharing one frame snapshot.
			d.events.Deliver(xr.SelectEvent{ID: id, Kind: m.Kind, Phase: xr.SelectStart, Frame: frame})
			d.events.Deliver(xr.SelectEvent{ID: id, Kind: m.Kind, Phase: xr.SelectSelect, Frame: frame})
		}
	case DisconnectInputMsg:
		if input.active {
			d.events.Deliver(xr.RemoveInputEvent{ID: id})
			input.active = false
			input.clicking = false
		}
	case ReconnectInputMsg:
		if !input.active {
			d.events.Deliver(xr.AddInputEvent{Source: input.source})
			input.active = true
		}
	}
}

// frameLocked assembles the base frame snapshot: viewer pose and one
// InputFrame per active input. Press and squeeze flags are always false;
// the simulated device does not model continuous press state beyond the
// select gesture. Caller holds the state lock.
func (d *deviceData) frameLocked() xr.Frame {
	inputs := make([]xr.InputFrame, 0, len(d.inputs))
	for i := range d.inputs {
		input := &d.inputs[i]
		if !input.active {
			continue
		}
		inputs = append(inputs, xr.InputFrame{
			ID:              input.source.ID,
			TargetRayOrigin: input.pointer,
			GripOrigin:      input.grip,
		})
	}
	return xr.Frame{
		Transform: d.viewerOrigin,
		Inputs:    inputs,
		TimeNs:    time.Now().UnixNano(),
	}
}

// nativeRayLocked resolves a declared-space ray into the device's native
// frame by composing the base transform selected by the space's base tag
// with the space's fixed offset. It returns nil when the required base
// transform is currently absent (no floor calibration, untracked viewer,
// or a missing input pose). Caller holds the state lock.
func (d *deviceData) nativeRayLocked(ray xr.Ray[xr.ApiSpace], space xr.SpaceDescriptor) *xr.Ray[xr.Native] {
	var base xr.RigidTransform[xr.ApiSpace, xr.Native]
	switch space.Base.Kind {
	case xr.BaseLocal:
		base = xr.Identity[xr.ApiSpace, xr.Native]()
	case xr.BaseFloor:
		if d.floorTransform == nil {
			return nil
		}
		base = xr.CastTransform[xr.ApiSpace, xr.Native](d.floorTransform.Inverse())
	case xr.BaseViewer:
		if d.viewerOrigin == nil {
			return nil
		}
		base = xr.CastTransform[xr.ApiSpace, xr.Native](*d.viewerOrigin)
	case xr.BaseTargetRay:
		input := d.findInput(space.Base.Input)
		if input == nil || input.pointer == nil {
			return nil
		}
		base = xr.CastTransform[xr.ApiSpace, xr.Native](*input.pointer)
	case xr.BaseGrip:
		input := d.findInput(space.Base.Input)
		if input == nil || input.grip == nil {
			return nil
		}
		base = xr.CastTransform[xr.ApiSpace, xr.Native](*input.grip)
	default:
		return nil
	}
	origin := xr.Compose(space.Offset, base)
	return &xr.Ray[xr.Native]{
		Origin:    origin.TransformPoint(ray.Origin),
		Direction: origin.RotateVector(ray.Direction),
	}
}
