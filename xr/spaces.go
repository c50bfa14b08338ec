package xr

// Space is the marker interface satisfied by the zero-sized coordinate
// frame tags below. Tags exist purely so transforms and geometric values
// are annotated with source/target frames at compile time; they carry no
// runtime data and are never instantiated for their own sake.
type Space interface{ xrSpace() }

// Viewer is the coordinate space of the viewer's head.
type Viewer struct{}

// Floor is the coordinate space of the calibrated floor.
type Floor struct{}

// LeftEye is the coordinate space of the left eye.
type LeftEye struct{}

// RightEye is the coordinate space of the right eye.
type RightEye struct{}

// Native is the native 3D coordinate space of the device. All device
// state (viewer origin, input poses, world geometry) is expressed here.
type Native struct{}

// Display is the normalized device coordinate space, where the display
// spans (-1,-1) to (1,1).
type Display struct{}

// Viewport is the unnormalized device coordinate space, where the display
// spans (0,0) to (w,h), measured in pixels.
type Viewport struct{}

// Input is the coordinate space of an input device.
type Input struct{}

// Capture is the coordinate space of a secondary capture view.
type Capture struct{}

// ApiSpace is the coordinate space declared by the API caller, for values
// (rays, hit poses) whose concrete frame is only resolved at runtime.
type ApiSpace struct{}

func (Viewer) xrSpace()   {}
func (Floor) xrSpace()    {}
func (LeftEye) xrSpace()  {}
func (RightEye) xrSpace() {}
func (Native) xrSpace()   {}
func (Display) xrSpace()  {}
func (Viewport) xrSpace() {}
func (Input) xrSpace()    {}
func (Capture) xrSpace()  {}
func (ApiSpace) xrSpace() {}
