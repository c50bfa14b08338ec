package headless

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xrsim/xrsim/xr"
)

// framePacing is the simulated frame interval: WaitForAnimationFrame
// sleeps this long before assembling each frame.
const framePacing = 20 * time.Millisecond

// Discovery advertises the simulated backend and produces device actors
// bound to its shared state. It implements xr.Discovery.
type Discovery struct {
	data           *deviceData
	supportsInline bool
	supportsVR     bool
	supportsAR     bool
}

// Connect creates a simulated device from init and starts its control
// loop, which consumes msgs sequentially until a DisconnectMsg arrives or
// the channel closes.
func Connect(init DeviceInit, msgs <-chan DeviceMsg) *Discovery {
	data := &deviceData{
		viewerOrigin:      init.ViewerOrigin,
		supportedFeatures: init.SupportedFeatures,
		views:             init.Views,
		world:             init.World,
	}
	if init.FloorOrigin != nil {
		floor := init.FloorOrigin.Inverse()
		data.floorTransform = &floor
	}
	go runLoop(msgs, data)
	logrus.Debugf("headless: device connected, features=%v", init.SupportedFeatures)
	return &Discovery{
		data:           data,
		supportsInline: init.SupportsInline,
		supportsVR:     init.SupportsVR,
		supportsAR:     init.SupportsAR,
	}
}

// SupportsSession reports the per-mode support configured at connection
// time, or false unconditionally once the device has disconnected.
func (d *Discovery) SupportsSession(mode xr.SessionMode) bool {
	d.data.mu.Lock()
	disconnected := d.data.disconnected
	d.data.mu.Unlock()
	if disconnected {
		return false
	}
	switch mode {
	case xr.ModeInline:
		return d.supportsInline
	case xr.ModeImmersiveVR:
		return d.supportsVR
	case xr.ModeImmersiveAR:
		return d.supportsAR
	default:
		return false
	}
}

// RequestSession validates the requested features and asks the builder to
// spawn a device actor sharing this device's state.
func (d *Discovery) RequestSession(mode xr.SessionMode, init xr.SessionInit, builder xr.SessionBuilder) (*xr.Session, error) {
	if !d.SupportsSession(mode) {
		return nil, xr.ErrNoMatchingDevice
	}
	d.data.mu.Lock()
	supported := append([]string(nil), d.data.supportedFeatures...)
	d.data.mu.Unlock()
	granted, err := init.Validate(mode, supported)
	if err != nil {
		return nil, err
	}
	data := d.data
	return builder.Spawn(func() (xr.Device, error) {
		return &Device{
			data:            data,
			mode:            mode,
			clipPlanes:      xr.DefaultClipPlanes(),
			grantedFeatures: granted,
		}, nil
	})
}

// Device is the per-session device actor. It implements xr.Device by
// reading and writing the shared device state.
type Device struct {
	data            *deviceData
	mode            xr.SessionMode
	clipPlanes      xr.ClipPlanes
	hitTests        xr.HitTestList
	grantedFeatures []string
}

// FloorTransform returns a snapshot of the current floor transform, or
// nil before calibration.
func (d *Device) FloorTransform() *xr.RigidTransform[xr.Native, xr.Floor] {
	d.data.mu.Lock()
	defer d.data.mu.Unlock()
	if d.data.floorTransform == nil {
		return nil
	}
	floor := *d.data.floorTransform
	return &floor
}

// Views rebuilds the typed view configuration from the raw one. Inline
// sessions always report Inline; field-of-view specifications are
// substituted with projections derived from the current clip planes.
func (d *Device) Views() xr.Views {
	d.data.mu.Lock()
	defer d.data.mu.Unlock()
	return d.viewsLocked()
}

func (d *Device) viewsLocked() xr.Views {
	if d.mode == xr.ModeInline {
		return xr.Views{Kind: xr.ViewsInline}
	}
	switch d.data.views.Kind {
	case ViewsInitMono:
		mono := buildView(d.data.views.Mono, d.clipPlanes)
		return xr.Views{Kind: xr.ViewsMono, Mono: &mono}
	case ViewsInitStereo:
		left := buildView(d.data.views.Left, d.clipPlanes)
		right := buildView(d.data.views.Right, d.clipPlanes)
		return xr.Views{Kind: xr.ViewsStereo, Left: &left, Right: &right}
	default:
		return xr.Views{Kind: xr.ViewsInline}
	}
}

// buildView resolves one raw view, deriving the projection from the FOV
// when one is configured. A nil init yields the identity view.
func buildView[Eye xr.Space](init *ViewInit[Eye], clip xr.ClipPlanes) xr.View[Eye] {
	if init == nil {
		return xr.DefaultView[Eye]()
	}
	projection := init.Projection
	if init.FOV != nil {
		projection = xr.ProjectionFromFOV[Eye](*init.FOV, clip)
	}
	return xr.View[Eye]{Transform: init.Transform, Projection: projection}
}

// WaitForAnimationFrame blocks for the simulated frame interval, then
// assembles the frame under exclusive access to the shared state. It
// always returns a populated frame.
func (d *Device) WaitForAnimationFrame() *xr.Frame {
	time.Sleep(framePacing)
	d.data.mu.Lock()
	defer d.data.mu.Unlock()

	frame := d.data.frameLocked()
	frame.Events = d.hitTests.CommitTests()
	if d.data.needsViewUpdate {
		d.data.needsViewUpdate = false
		views := d.viewsLocked()
		frame.Events = append(frame.Events, xr.FrameUpdateEvent{
			Kind:  xr.FrameEventUpdateViews,
			Views: &views,
		})
	}

	if d.data.world != nil {
		for _, source := range d.hitTests.Tests() {
			ray := d.data.nativeRayLocked(source.Ray, source.Space)
			if ray == nil {
				// An unresolvable ray ends hit-test traversal for the
				// whole frame, not just this source.
				break
			}
			for _, region := range d.data.world.Regions {
				if !source.Types.IsType(region.Type) {
					continue
				}
				for _, face := range region.Faces {
					if pose, ok := face.Intersect(*ray); ok {
						frame.HitTestResults = append(frame.HitTestResults, xr.HitTestResult{
							ID:    source.ID,
							Space: pose,
						})
					}
				}
			}
		}
	}

	if d.data.needsFloorUpdate {
		d.data.needsFloorUpdate = false
		frame.Events = append(frame.Events, xr.FrameUpdateEvent{
			Kind:  xr.FrameEventUpdateFloor,
			Floor: d.data.floorTransform,
		})
	}
	logrus.Debugf("headless: frame assembled, inputs=%d hits=%d events=%d",
		len(frame.Inputs), len(frame.HitTestResults), len(frame.Events))
	return &frame
}

// RenderAnimationFrame is a pass-through: the simulated device performs
// no rendering.
func (d *Device) RenderAnimationFrame(surface xr.Surface) xr.Surface {
	return surface
}

// InitialInputs is always empty: inputs arrive only via later commands.
func (d *Device) InitialInputs() []xr.InputSource {
	return nil
}

// SetEventDest attaches the session's event sink, flushing any buffered
// events to it in original order.
func (d *Device) SetEventDest(sink xr.EventSink) {
	d.data.mu.Lock()
	defer d.data.mu.Unlock()
	d.data.events.Upgrade(sink)
}

// Quit emits a session-end event.
func (d *Device) Quit() {
	d.data.mu.Lock()
	defer d.data.mu.Unlock()
	d.data.events.Deliver(xr.SessionEndEvent{})
}

// SetQuitter stores the session runtime's shutdown handle.
func (d *Device) SetQuitter(q *xr.Quitter) {
	d.data.mu.Lock()
	defer d.data.mu.Unlock()
	d.data.quitter = q
}

// UpdateClipPlanes replaces the clip distances and marks the views dirty
// so the next frame carries an update-views event.
func (d *Device) UpdateClipPlanes(near, far float64) {
	d.clipPlanes.Update(near, far)
	d.data.mu.Lock()
	defer d.data.mu.Unlock()
	d.data.needsViewUpdate = true
}

// GrantedFeatures returns the features granted at session negotiation.
func (d *Device) GrantedFeatures() []string {
	return d.grantedFeatures
}

// RequestHitTest registers a spatial query, pending until the next frame.
func (d *Device) RequestHitTest(source xr.HitTestSource) {
	d.data.mu.Lock()
	defer d.data.mu.Unlock()
	d.hitTests.Request(source)
}

// CancelHitTest removes a spatial query, pending or committed.
func (d *Device) CancelHitTest(id xr.HitTestID) {
	d.data.mu.Lock()
	defer d.data.mu.Unlock()
	d.hitTests.Cancel(id)
}
