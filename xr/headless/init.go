package headless

import "github.com/xrsim/xrsim/xr"

// DeviceInit is the construction-time configuration of one simulated
// device.
type DeviceInit struct {
	// FloorOrigin is the Floor→Native calibration; nil means no floor
	// calibration yet. The device stores its inverse as the floor
	// transform.
	FloorOrigin *xr.RigidTransform[xr.Floor, xr.Native]
	// ViewerOrigin is the initial viewer pose; nil means untracked.
	ViewerOrigin *xr.RigidTransform[xr.Viewer, xr.Native]
	// SupportedFeatures is the feature list session requests are
	// validated against.
	SupportedFeatures []string
	// Per-mode session support, fixed at construction.
	SupportsInline bool
	SupportsVR     bool
	SupportsAR     bool
	// Views is the raw view configuration.
	Views ViewsInit
	// World is the synthetic hit-test geometry; nil means no world.
	World *xr.World
}

// ViewInit is the raw configuration of one eye's view. When FOV is set it
// overrides Projection: the device derives the projection from the FOV
// and its current clip planes each time views are rebuilt.
type ViewInit[Eye xr.Space] struct {
	Transform  xr.RigidTransform[Eye, xr.Native]
	Projection xr.Projection[Eye, xr.Display]
	FOV        *xr.FOV
	Viewport   xr.Rect[xr.Viewport]
}

// ViewsInitKind discriminates the raw view configuration variants.
type ViewsInitKind string

const (
	ViewsInitMono   ViewsInitKind = "mono"
	ViewsInitStereo ViewsInitKind = "stereo"
)

// ViewsInit is the raw mono/stereo view configuration delivered by
// SetViewsMsg. Only the fields of the active variant are set.
type ViewsInit struct {
	Kind  ViewsInitKind
	Mono  *ViewInit[xr.Viewer]
	Left  *ViewInit[xr.LeftEye]
	Right *ViewInit[xr.RightEye]
}

// InputInit describes a new input source added by AddInputSourceMsg.
type InputInit struct {
	Source        xr.InputSource
	PointerOrigin *xr.RigidTransform[xr.Input, xr.Native]
	GripOrigin    *xr.RigidTransform[xr.Input, xr.Native]
}
