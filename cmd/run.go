package cmd

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/xrsim/xrsim/xr"
	"github.com/xrsim/xrsim/xr/headless"
)

// vec3 reads up to three components from a YAML float list, zero-padding
// the rest.
func vec3(v []float64) r3.Vec {
	var out [3]float64
	copy(out[:], v)
	return r3.Vec{X: out[0], Y: out[1], Z: out[2]}
}

func rigidFromConfig[Src, Dst xr.Space](c *TransformConfig) *xr.RigidTransform[Src, Dst] {
	if c == nil {
		return nil
	}
	t := xr.Translation[Src, Dst](vec3(c.Translation))
	if len(c.Axis) == 3 && c.AngleDeg != 0 {
		t.Rotation = r3.NewRotation(c.AngleDeg*math.Pi/180, r3.Unit(vec3(c.Axis)))
	}
	return &t
}

func fovFromConfig(c *FOVConfig) *xr.FOV {
	if c == nil {
		return nil
	}
	rad := math.Pi / 180
	return &xr.FOV{
		Up:    c.UpDeg * rad,
		Down:  c.DownDeg * rad,
		Left:  c.LeftDeg * rad,
		Right: c.RightDeg * rad,
	}
}

func viewInitFromConfig[Eye xr.Space](c *ViewConfig) *headless.ViewInit[Eye] {
	if c == nil {
		return nil
	}
	init := headless.ViewInit[Eye]{
		Transform:  xr.Identity[Eye, xr.Native](),
		Projection: xr.IdentityProjection[Eye, xr.Display](),
		FOV:        fovFromConfig(c.FOV),
	}
	if c.Transform != nil {
		init.Transform = *rigidFromConfig[Eye, xr.Native](c.Transform)
	}
	if len(c.Viewport) == 4 {
		init.Viewport = xr.Rect[xr.Viewport]{
			X: c.Viewport[0], Y: c.Viewport[1],
			Width: c.Viewport[2], Height: c.Viewport[3],
		}
	}
	return &init
}

func viewsInitFromConfig(c ViewsConfig) headless.ViewsInit {
	switch c.Kind {
	case "stereo":
		return headless.ViewsInit{
			Kind:  headless.ViewsInitStereo,
			Left:  viewInitFromConfig[xr.LeftEye](c.Left),
			Right: viewInitFromConfig[xr.RightEye](c.Right),
		}
	default:
		return headless.ViewsInit{
			Kind: headless.ViewsInitMono,
			Mono: viewInitFromConfig[xr.Viewer](c.Mono),
		}
	}
}

func worldFromConfig(regions []RegionConfig) *xr.World {
	if len(regions) == 0 {
		return nil
	}
	world := &xr.World{}
	for _, rc := range regions {
		region := xr.Region{Type: xr.EntityType(rc.Type)}
		for _, face := range rc.Faces {
			region.Faces = append(region.Faces, xr.Triangle{
				First:  vec3(face[0]),
				Second: vec3(face[1]),
				Third:  vec3(face[2]),
			})
		}
		world.Regions = append(world.Regions, region)
	}
	return world
}

// entityTypesFromConfig builds the type filter; an empty list matches
// every region type.
func entityTypesFromConfig(types []string) xr.EntityTypes {
	if len(types) == 0 {
		return xr.EntityTypesAll
	}
	var filter xr.EntityTypes
	for _, ty := range types {
		switch xr.EntityType(ty) {
		case xr.EntityPoint:
			filter.Point = true
		case xr.EntityPlane:
			filter.Plane = true
		case xr.EntityMesh:
			filter.Mesh = true
		}
	}
	return filter
}

func deviceInitFromConfig(c DeviceConfig) headless.DeviceInit {
	return headless.DeviceInit{
		FloorOrigin:       rigidFromConfig[xr.Floor, xr.Native](c.FloorOrigin),
		ViewerOrigin:      rigidFromConfig[xr.Viewer, xr.Native](c.ViewerOrigin),
		SupportedFeatures: c.SupportedFeatures,
		SupportsInline:    c.SupportsInline,
		SupportsVR:        c.SupportsVR,
		SupportsAR:        c.SupportsAR,
		Views:             viewsInitFromConfig(c.Views),
		World:             worldFromConfig(c.World),
	}
}

// stepMsg translates one scripted step into a control command.
func stepMsg(step StepConfig) headless.DeviceMsg {
	switch step.Command {
	case "visibility":
		return headless.VisibilityChangeMsg{Visibility: xr.Visibility(step.Visibility)}
	case "add-input":
		handedness := xr.Handedness(step.Handedness)
		if handedness == "" {
			handedness = xr.HandNone
		}
		rayMode := xr.TargetRayMode(step.TargetRayMode)
		if rayMode == "" {
			rayMode = xr.TargetRayTrackedPointer
		}
		return headless.AddInputSourceMsg{Init: headless.InputInit{
			Source: xr.InputSource{
				ID:            xr.InputID(step.Input),
				Handedness:    handedness,
				TargetRayMode: rayMode,
				Profiles:      step.Profiles,
			},
			PointerOrigin: rigidFromConfig[xr.Input, xr.Native](step.Pointer),
		}}
	case "select":
		kind := xr.SelectKind(step.Kind)
		if kind == "" {
			kind = xr.SelectKindSelect
		}
		return headless.MessageInputSourceMsg{
			ID:  xr.InputID(step.Input),
			Msg: headless.TriggerSelectMsg{Kind: kind, Phase: xr.SelectPhase(step.Phase)},
		}
	case "set-pointer":
		return headless.MessageInputSourceMsg{
			ID:  xr.InputID(step.Input),
			Msg: headless.SetPointerOriginMsg{Origin: rigidFromConfig[xr.Input, xr.Native](step.Pointer)},
		}
	case "disconnect-input":
		return headless.MessageInputSourceMsg{ID: xr.InputID(step.Input), Msg: headless.DisconnectInputMsg{}}
	case "reconnect-input":
		return headless.MessageInputSourceMsg{ID: xr.InputID(step.Input), Msg: headless.ReconnectInputMsg{}}
	case "set-viewer-origin":
		return headless.SetViewerOriginMsg{Origin: rigidFromConfig[xr.Viewer, xr.Native](step.Origin)}
	case "set-floor-origin":
		return headless.SetFloorOriginMsg{Origin: rigidFromConfig[xr.Floor, xr.Native](step.Origin)}
	case "clear-world":
		return headless.ClearWorldMsg{}
	default:
		return nil
	}
}

// runScenario connects a simulated device, requests the configured
// session, replays the script, and pumps animation frames. When
// recordPath is non-empty, every frame is also appended to a CBOR
// recording readable by the replay command.
func runScenario(sc *ScenarioConfig, recordPath string) error {
	var recorder *frameRecorder
	if recordPath != "" {
		var err error
		recorder, err = newFrameRecorder(recordPath)
		if err != nil {
			return err
		}
		defer recorder.Close()
	}

	msgs := make(chan headless.DeviceMsg, 64)
	discovery := headless.Connect(deviceInitFromConfig(sc.Device), msgs)

	mode := xr.SessionMode(sc.Session.Mode)
	session, err := discovery.RequestSession(mode, xr.SessionInit{
		RequiredFeatures: sc.Session.RequiredFeatures,
		OptionalFeatures: sc.Session.OptionalFeatures,
	}, xr.SpawnBuilder{})
	if err != nil {
		return fmt.Errorf("requesting %s session: %w", mode, err)
	}
	device := session.Device()
	logrus.Infof("session granted, mode=%s features=%v", mode, session.GrantedFeatures())

	events := make(chan xr.Event, 256)
	device.SetEventDest(xr.ChannelSink{C: events})

	for _, ht := range sc.HitTests {
		var offset xr.RigidTransform[xr.ApiSpace, xr.ApiSpace]
		if ht.Offset != nil {
			offset = *rigidFromConfig[xr.ApiSpace, xr.ApiSpace](ht.Offset)
		} else {
			offset = xr.Identity[xr.ApiSpace, xr.ApiSpace]()
		}
		id := session.RequestHitTest(
			xr.SpaceDescriptor{
				Base:   xr.BaseSpace{Kind: xr.BaseSpaceKind(ht.Base), Input: xr.InputID(ht.Input)},
				Offset: offset,
			},
			xr.Ray[xr.ApiSpace]{Origin: vec3(ht.Origin), Direction: vec3(ht.Direction)},
			entityTypesFromConfig(ht.Types),
		)
		logrus.Infof("hit test %d registered, base=%s", id, ht.Base)
	}

	for frameIdx := 0; frameIdx < sc.Frames; frameIdx++ {
		for _, step := range sc.Script {
			if step.Frame == frameIdx {
				if msg := stepMsg(step); msg != nil {
					msgs <- msg
				}
			}
		}
		frame := device.WaitForAnimationFrame()
		if recorder != nil {
			if err := recorder.Record(frame); err != nil {
				return fmt.Errorf("recording frame %d: %w", frameIdx, err)
			}
		}
		logrus.Infof("frame %03d: inputs=%d updates=%d hits=%d",
			frameIdx, len(frame.Inputs), len(frame.Events), len(frame.HitTestResults))
		for _, hit := range frame.HitTestResults {
			logrus.Infof("  hit %d at (%.3f, %.3f, %.3f)",
				hit.ID, hit.Space.Translation.X, hit.Space.Translation.Y, hit.Space.Translation.Z)
		}
	drain:
		for {
			select {
			case ev := <-events:
				logrus.Infof("  event: %#v", ev)
			default:
				break drain
			}
		}
	}

	ack := make(chan struct{}, 1)
	msgs <- headless.DisconnectMsg{Ack: ack}
	<-ack
	logrus.Info("device disconnected")
	return nil
}
