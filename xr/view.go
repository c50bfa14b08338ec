package xr

// View is one eye's pose and its projection onto the display. Stereo
// devices expose a View[LeftEye] and a View[RightEye]; mono devices a
// View[Viewer].
type View[Eye Space] struct {
	Transform  RigidTransform[Eye, Native]
	Projection Projection[Eye, Display]
}

// DefaultView returns the identity transform/projection pair.
func DefaultView[Eye Space]() View[Eye] {
	return View[Eye]{
		Transform:  Identity[Eye, Native](),
		Projection: IdentityProjection[Eye, Display](),
	}
}

// CastView re-tags a view's eye space, reusing the numbers verbatim.
// Callers must guarantee the new eye tag is physically equivalent.
func CastView[NewEye, Eye Space](v View[Eye]) View[NewEye] {
	return View[NewEye]{
		Transform:  CastTransform[NewEye, Native](v.Transform),
		Projection: CastProjection[NewEye, Display](v.Projection),
	}
}

// ViewsKind discriminates the active Views variant.
type ViewsKind string

const (
	// ViewsInline means the client computes viewports and projections
	// itself.
	ViewsInline ViewsKind = "inline"
	// ViewsMono is a single viewer-space view.
	ViewsMono ViewsKind = "mono"
	// ViewsStereo is a left/right eye pair.
	ViewsStereo ViewsKind = "stereo"
	// ViewsStereoCapture is a left/right pair plus a secondary capture view.
	ViewsStereoCapture ViewsKind = "stereo-capture"
)

// Views is the view configuration of a session. Exactly one variant is
// active; only the fields of the active variant are set.
type Views struct {
	Kind    ViewsKind
	Mono    *View[Viewer]
	Left    *View[LeftEye]
	Right   *View[RightEye]
	Capture *View[Capture]
}

// NumViews reports the number of distinct eye-views in the configuration.
func (v Views) NumViews() int {
	switch v.Kind {
	case ViewsMono:
		return 1
	case ViewsStereo:
		return 2
	case ViewsStereoCapture:
		return 3
	default:
		return 0
	}
}

// Rect is a pixel rectangle in space S.
type Rect[S Space] struct {
	X, Y, Width, Height int32
}

// Viewports is an ordered list of pixel rectangles, index-aligned with the
// view list of the active Views variant. Not all entries are necessarily
// in use.
type Viewports struct {
	Viewports []Rect[Viewport]
}
