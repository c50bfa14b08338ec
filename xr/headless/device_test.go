package headless

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/xrsim/xrsim/xr"
)

// planeAhead is a single plane region one unit ahead of the native
// origin along -Z.
func planeAhead() *xr.World {
	return &xr.World{Regions: []xr.Region{{
		Type: xr.EntityPlane,
		Faces: []xr.Triangle{{
			First:  r3.Vec{X: -1, Y: -1, Z: -1},
			Second: r3.Vec{X: 1, Y: -1, Z: -1},
			Third:  r3.Vec{X: 0, Y: 1, Z: -1},
		}},
	}}}
}

// newTestDevice builds a device actor over fresh state, bypassing the
// control loop so tests stay single-threaded.
func newTestDevice(mode xr.SessionMode) *Device {
	viewer := xr.Identity[xr.Viewer, xr.Native]()
	floor := xr.Identity[xr.Native, xr.Floor]()
	return &Device{
		data: &deviceData{
			viewerOrigin:   &viewer,
			floorTransform: &floor,
			views:          ViewsInit{Kind: ViewsInitMono},
			world:          planeAhead(),
		},
		mode:       mode,
		clipPlanes: xr.DefaultClipPlanes(),
	}
}

func localHitTestSource(id xr.HitTestID, types xr.EntityTypes) xr.HitTestSource {
	return xr.HitTestSource{
		ID: id,
		Space: xr.SpaceDescriptor{
			Base:   xr.BaseSpace{Kind: xr.BaseLocal},
			Offset: xr.Identity[xr.ApiSpace, xr.ApiSpace](),
		},
		Ray:   xr.Ray[xr.ApiSpace]{Origin: r3.Vec{}, Direction: r3.Vec{Z: -1}},
		Types: types,
	}
}

func TestWaitForAnimationFrame_HitTestAgainstWorld(t *testing.T) {
	// GIVEN a device with one plane ahead and a registered local-space query
	d := newTestDevice(xr.ModeImmersiveVR)
	d.RequestHitTest(localHitTestSource(1, xr.EntityTypesAll))

	// WHEN the next frame is produced
	frame := d.WaitForAnimationFrame()

	// THEN the query is announced and yields exactly one hit at the plane
	require.Len(t, frame.Events, 1)
	assert.Equal(t, xr.FrameEventHitTestSourceAdded, frame.Events[0].Kind)
	require.Len(t, frame.HitTestResults, 1)
	assert.Equal(t, xr.HitTestID(1), frame.HitTestResults[0].ID)
	assert.InDelta(t, -1, frame.HitTestResults[0].Space.Translation.Z, 1e-9)
}

func TestWaitForAnimationFrame_TypeFilterExcludesRegion(t *testing.T) {
	d := newTestDevice(xr.ModeImmersiveVR)
	d.RequestHitTest(localHitTestSource(1, xr.EntityTypes{Mesh: true}))

	frame := d.WaitForAnimationFrame()

	assert.Empty(t, frame.HitTestResults)
}

func TestWaitForAnimationFrame_UnresolvableRayAbortsRemainingSources(t *testing.T) {
	// GIVEN a floor-based query with no floor calibration, registered
	// ahead of a resolvable local-space query
	d := newTestDevice(xr.ModeImmersiveVR)
	d.data.floorTransform = nil
	d.data.needsFloorUpdate = false
	floorSource := localHitTestSource(1, xr.EntityTypesAll)
	floorSource.Space.Base.Kind = xr.BaseFloor
	d.RequestHitTest(floorSource)
	d.RequestHitTest(localHitTestSource(2, xr.EntityTypesAll))

	// WHEN the next frame is produced
	frame := d.WaitForAnimationFrame()

	// THEN traversal stops at the unresolvable ray and the later source
	// produces no hits either
	assert.Empty(t, frame.HitTestResults)
}

func TestWaitForAnimationFrame_EventOrder(t *testing.T) {
	// GIVEN a pending hit-test query plus dirty views and floor
	d := newTestDevice(xr.ModeImmersiveVR)
	d.RequestHitTest(localHitTestSource(1, xr.EntityTypesAll))
	d.data.needsViewUpdate = true
	d.data.needsFloorUpdate = true

	// WHEN the next frame is produced
	frame := d.WaitForAnimationFrame()

	// THEN the events arrive as announcement, views, floor
	require.Len(t, frame.Events, 3)
	assert.Equal(t, xr.FrameEventHitTestSourceAdded, frame.Events[0].Kind)
	assert.Equal(t, xr.FrameEventUpdateViews, frame.Events[1].Kind)
	assert.Equal(t, xr.FrameEventUpdateFloor, frame.Events[2].Kind)
	require.NotNil(t, frame.Events[1].Views)
	require.NotNil(t, frame.Events[2].Floor)
}

func TestWaitForAnimationFrame_DirtyFlagsClearAfterOneFrame(t *testing.T) {
	d := newTestDevice(xr.ModeImmersiveVR)
	d.data.needsViewUpdate = true
	d.data.needsFloorUpdate = true

	first := d.WaitForAnimationFrame()
	second := d.WaitForAnimationFrame()

	assert.Len(t, first.Events, 2)
	assert.Empty(t, second.Events)
}

func TestUpdateClipPlanes_RederivesFOVProjection(t *testing.T) {
	// GIVEN a mono view specified by field of view
	d := newTestDevice(xr.ModeImmersiveVR)
	fov := xr.FOV{Up: 0.7, Down: 0.7, Left: 0.8, Right: 0.8}
	d.data.views.Mono = &ViewInit[xr.Viewer]{FOV: &fov}
	d.WaitForAnimationFrame()

	// WHEN the clip planes change
	d.UpdateClipPlanes(0.5, 50)
	frame := d.WaitForAnimationFrame()

	// THEN the next frame re-announces views with the projection derived
	// from the new clip distances
	require.Len(t, frame.Events, 1)
	require.Equal(t, xr.FrameEventUpdateViews, frame.Events[0].Kind)
	require.NotNil(t, frame.Events[0].Views.Mono)
	want := xr.ProjectionFromFOV[xr.Viewer](fov, xr.ClipPlanes{Near: 0.5, Far: 50})
	assert.Equal(t, want, frame.Events[0].Views.Mono.Projection)
}

func TestViews_InlineModeIgnoresConfiguredViews(t *testing.T) {
	d := newTestDevice(xr.ModeInline)
	views := d.Views()
	assert.Equal(t, xr.ViewsInline, views.Kind)
	assert.Nil(t, views.Mono)
}

func TestViews_StereoConfiguration(t *testing.T) {
	d := newTestDevice(xr.ModeImmersiveVR)
	d.data.views = ViewsInit{
		Kind: ViewsInitStereo,
		Left: &ViewInit[xr.LeftEye]{
			Transform: xr.Translation[xr.LeftEye, xr.Native](r3.Vec{X: -0.03}),
		},
		Right: &ViewInit[xr.RightEye]{
			Transform: xr.Translation[xr.RightEye, xr.Native](r3.Vec{X: 0.03}),
		},
	}

	views := d.Views()

	require.Equal(t, xr.ViewsStereo, views.Kind)
	require.NotNil(t, views.Left)
	require.NotNil(t, views.Right)
	assert.InDelta(t, -0.03, views.Left.Transform.Translation.X, 1e-12)
	assert.InDelta(t, 0.03, views.Right.Transform.Translation.X, 1e-12)
	assert.Equal(t, 2, views.NumViews())
}

func TestFloorTransform_ReturnsSnapshot(t *testing.T) {
	d := newTestDevice(xr.ModeImmersiveVR)
	first := d.FloorTransform()
	require.NotNil(t, first)

	d.data.floorTransform = nil

	assert.NotNil(t, first)
	assert.Nil(t, d.FloorTransform())
}

func TestRenderAnimationFrame_PassesSurfaceThrough(t *testing.T) {
	d := newTestDevice(xr.ModeImmersiveVR)
	assert.Equal(t, xr.Surface(42), d.RenderAnimationFrame(xr.Surface(42)))
}

func TestInitialInputs_Empty(t *testing.T) {
	d := newTestDevice(xr.ModeImmersiveVR)
	assert.Empty(t, d.InitialInputs())
}

func TestSetEventDest_FlushesBufferedEventsInOrder(t *testing.T) {
	d := newTestDevice(xr.ModeImmersiveVR)
	d.data.events.Deliver(xr.VisibilityChangeEvent{Visibility: xr.VisibilityHidden})
	d.Quit()

	sink := &recordSink{}
	d.SetEventDest(sink)

	require.Len(t, sink.events, 2)
	assert.Equal(t, xr.VisibilityChangeEvent{Visibility: xr.VisibilityHidden}, sink.events[0])
	assert.Equal(t, xr.SessionEndEvent{}, sink.events[1])
}

func TestCancelHitTest_BeforeCommit_NeverAnnounced(t *testing.T) {
	d := newTestDevice(xr.ModeImmersiveVR)
	d.RequestHitTest(localHitTestSource(1, xr.EntityTypesAll))
	d.CancelHitTest(1)

	frame := d.WaitForAnimationFrame()

	assert.Empty(t, frame.Events)
	assert.Empty(t, frame.HitTestResults)
}

func connectTestDevice(t *testing.T, init DeviceInit) (*Discovery, chan DeviceMsg) {
	t.Helper()
	msgs := make(chan DeviceMsg, 16)
	discovery := Connect(init, msgs)
	t.Cleanup(func() {
		ack := make(chan struct{}, 1)
		msgs <- DisconnectMsg{Ack: ack}
		select {
		case <-ack:
		case <-time.After(time.Second):
		}
	})
	return discovery, msgs
}

func TestDiscovery_SupportsSessionPerMode(t *testing.T) {
	discovery, _ := connectTestDevice(t, DeviceInit{SupportsInline: true, SupportsVR: true})

	assert.True(t, discovery.SupportsSession(xr.ModeInline))
	assert.True(t, discovery.SupportsSession(xr.ModeImmersiveVR))
	assert.False(t, discovery.SupportsSession(xr.ModeImmersiveAR))
}

func TestDiscovery_SupportsNothingAfterDisconnect(t *testing.T) {
	msgs := make(chan DeviceMsg, 1)
	discovery := Connect(DeviceInit{SupportsVR: true}, msgs)

	ack := make(chan struct{}, 1)
	msgs <- DisconnectMsg{Ack: ack}
	select {
	case <-ack:
	case <-time.After(time.Second):
		t.Fatal("disconnect was not acknowledged")
	}

	assert.False(t, discovery.SupportsSession(xr.ModeImmersiveVR))
}

func TestDiscovery_RequestSession_UnsupportedMode(t *testing.T) {
	discovery, _ := connectTestDevice(t, DeviceInit{SupportsInline: true})
	_, err := discovery.RequestSession(xr.ModeImmersiveAR, xr.SessionInit{}, xr.SpawnBuilder{})
	assert.ErrorIs(t, err, xr.ErrNoMatchingDevice)
}

func TestDiscovery_RequestSession_FeatureValidationFailure(t *testing.T) {
	discovery, _ := connectTestDevice(t, DeviceInit{
		SupportsVR:        true,
		SupportedFeatures: []string{"local-floor"},
	})
	init := xr.SessionInit{RequiredFeatures: []string{"hand-tracking"}}
	_, err := discovery.RequestSession(xr.ModeImmersiveVR, init, xr.SpawnBuilder{})
	assert.ErrorIs(t, err, xr.ErrUnsupportedFeature)
}

func TestDiscovery_RequestSession_GrantsFeatures(t *testing.T) {
	// GIVEN a connected device supporting two features
	discovery, _ := connectTestDevice(t, DeviceInit{
		SupportsVR:        true,
		SupportedFeatures: []string{"local-floor", "hit-test"},
	})

	// WHEN a session requests one required and one unsupported optional
	init := xr.SessionInit{
		RequiredFeatures: []string{"hit-test"},
		OptionalFeatures: []string{"hand-tracking"},
	}
	session, err := discovery.RequestSession(xr.ModeImmersiveVR, init, xr.SpawnBuilder{})

	// THEN the session carries exactly the supported grant
	require.NoError(t, err)
	assert.Equal(t, []string{"hit-test"}, session.GrantedFeatures())
}

func TestControlLoopAndActor_ShareState(t *testing.T) {
	// GIVEN a connected device and a session over it
	discovery, msgs := connectTestDevice(t, DeviceInit{SupportsVR: true})
	session, err := discovery.RequestSession(xr.ModeImmersiveVR, xr.SessionInit{}, xr.SpawnBuilder{})
	require.NoError(t, err)

	events := make(chan xr.Event, 16)
	session.Device().SetEventDest(xr.ChannelSink{C: events})

	// WHEN the control loop adds an input
	msgs <- AddInputSourceMsg{Init: InputInit{Source: xr.InputSource{ID: 1}}}

	// THEN the session's sink observes the addition
	select {
	case ev := <-events:
		add, ok := ev.(xr.AddInputEvent)
		require.True(t, ok)
		assert.Equal(t, xr.InputID(1), add.Source.ID)
	case <-time.After(time.Second):
		t.Fatal("add-input event was not delivered")
	}
}
