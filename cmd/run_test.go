package cmd

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/xrsim/xrsim/xr"
	"github.com/xrsim/xrsim/xr/headless"
)

func TestVec3_ZeroPadsShortLists(t *testing.T) {
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, vec3([]float64{1, 2, 3}))
	assert.Equal(t, r3.Vec{X: 1}, vec3([]float64{1}))
	assert.Equal(t, r3.Vec{}, vec3(nil))
}

func TestRigidFromConfig_TranslationOnly(t *testing.T) {
	got := rigidFromConfig[xr.Viewer, xr.Native](&TransformConfig{Translation: []float64{0, 1.6, 0}})
	require.NotNil(t, got)
	assert.Equal(t, r3.Vec{Y: 1.6}, got.Translation)
}

func TestRigidFromConfig_AxisAngleRotation(t *testing.T) {
	// GIVEN a 90 degree rotation about +Y
	got := rigidFromConfig[xr.Viewer, xr.Native](&TransformConfig{
		Axis:     []float64{0, 1, 0},
		AngleDeg: 90,
	})

	// WHEN it rotates the forward direction
	require.NotNil(t, got)
	rotated := got.RotateVector(r3.Vec{Z: -1})

	// THEN -Z maps to -X
	assert.InDelta(t, -1, rotated.X, 1e-12)
	assert.InDelta(t, 0, rotated.Z, 1e-12)
}

func TestRigidFromConfig_NilPassesThrough(t *testing.T) {
	assert.Nil(t, rigidFromConfig[xr.Viewer, xr.Native](nil))
}

func TestFOVFromConfig_ConvertsDegreesToRadians(t *testing.T) {
	fov := fovFromConfig(&FOVConfig{UpDeg: 45, DownDeg: -45, LeftDeg: -90, RightDeg: 90})
	require.NotNil(t, fov)
	assert.InDelta(t, math.Pi/4, fov.Up, 1e-12)
	assert.InDelta(t, -math.Pi/2, fov.Left, 1e-12)
}

func TestEntityTypesFromConfig(t *testing.T) {
	assert.Equal(t, xr.EntityTypesAll, entityTypesFromConfig(nil))
	assert.Equal(t, xr.EntityTypes{Plane: true}, entityTypesFromConfig([]string{"plane"}))
	assert.Equal(t, xr.EntityTypes{Point: true, Mesh: true}, entityTypesFromConfig([]string{"point", "mesh"}))
}

func TestWorldFromConfig(t *testing.T) {
	world := worldFromConfig([]RegionConfig{{
		Type:  "plane",
		Faces: [][][]float64{{{-1, -1, -2}, {1, -1, -2}, {0, 1, -2}}},
	}})
	require.NotNil(t, world)
	require.Len(t, world.Regions, 1)
	assert.Equal(t, xr.EntityPlane, world.Regions[0].Type)
	require.Len(t, world.Regions[0].Faces, 1)
	assert.Equal(t, r3.Vec{X: -1, Y: -1, Z: -2}, world.Regions[0].Faces[0].First)

	assert.Nil(t, worldFromConfig(nil))
}

func TestStepMsg_AddInputAppliesDefaults(t *testing.T) {
	msg := stepMsg(StepConfig{Command: "add-input", Input: 3})
	add, ok := msg.(headless.AddInputSourceMsg)
	require.True(t, ok)
	assert.Equal(t, xr.InputID(3), add.Init.Source.ID)
	assert.Equal(t, xr.HandNone, add.Init.Source.Handedness)
	assert.Equal(t, xr.TargetRayTrackedPointer, add.Init.Source.TargetRayMode)
}

func TestStepMsg_SelectDefaultsToSelectKind(t *testing.T) {
	msg := stepMsg(StepConfig{Command: "select", Input: 1, Phase: "start"})
	sel, ok := msg.(headless.MessageInputSourceMsg)
	require.True(t, ok)
	trigger, ok := sel.Msg.(headless.TriggerSelectMsg)
	require.True(t, ok)
	assert.Equal(t, xr.SelectKindSelect, trigger.Kind)
	assert.Equal(t, xr.SelectStart, trigger.Phase)
}

func TestStepMsg_InputLifecycleCommands(t *testing.T) {
	disconnect := stepMsg(StepConfig{Command: "disconnect-input", Input: 2})
	msg, ok := disconnect.(headless.MessageInputSourceMsg)
	require.True(t, ok)
	assert.Equal(t, xr.InputID(2), msg.ID)
	assert.IsType(t, headless.DisconnectInputMsg{}, msg.Msg)

	reconnect := stepMsg(StepConfig{Command: "reconnect-input", Input: 2})
	msg, ok = reconnect.(headless.MessageInputSourceMsg)
	require.True(t, ok)
	assert.IsType(t, headless.ReconnectInputMsg{}, msg.Msg)
}

func TestStepMsg_UnknownCommand_Nil(t *testing.T) {
	assert.Nil(t, stepMsg(StepConfig{Command: "warp"}))
}

func TestFrameRecorder_RoundTrip(t *testing.T) {
	// GIVEN two frames written through the recorder
	path := filepath.Join(t.TempDir(), "frames.cbor")
	recorder, err := newFrameRecorder(path)
	require.NoError(t, err)

	viewer := xr.Translation[xr.Viewer, xr.Native](r3.Vec{Y: 1.6})
	first := xr.Frame{Transform: &viewer, TimeNs: 100}
	second := xr.Frame{
		HitTestResults: []xr.HitTestResult{{ID: 1, Space: xr.Translation[xr.ApiSpace, xr.Native](r3.Vec{Z: -1})}},
		TimeNs:         200,
	}
	require.NoError(t, recorder.Record(&first))
	require.NoError(t, recorder.Record(&second))
	require.NoError(t, recorder.Close())

	// WHEN the recording is read back
	frames, err := readRecording(path)
	require.NoError(t, err)

	// THEN both frames arrive intact and in order
	require.Len(t, frames, 2)
	assert.Equal(t, first, frames[0])
	assert.Equal(t, second, frames[1])
}

func TestReadRecording_MissingFile(t *testing.T) {
	_, err := readRecording(filepath.Join(t.TempDir(), "absent.cbor"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening recording")
}

func TestRunScenario_EndToEnd(t *testing.T) {
	// GIVEN a scenario with a plane, a local-space query, and a scripted
	// input that fires a select pulse
	scenario := &ScenarioConfig{
		Device: DeviceConfig{
			SupportsVR:        true,
			SupportedFeatures: []string{"hit-test"},
			World: []RegionConfig{{
				Type:  "plane",
				Faces: [][][]float64{{{-1, -1, -1}, {1, -1, -1}, {0, 1, -1}}},
			}},
			ViewerOrigin: &TransformConfig{},
		},
		Session: SessionConfig{Mode: "immersive-vr", RequiredFeatures: []string{"hit-test"}},
		HitTests: []HitTestConfig{{
			Base:      "local",
			Direction: []float64{0, 0, -1},
		}},
		Frames: 3,
		Script: []StepConfig{
			{Frame: 0, Command: "add-input", Input: 1, Handedness: "right"},
			{Frame: 1, Command: "select", Input: 1, Phase: "select"},
		},
	}
	require.NoError(t, scenario.Validate())

	// WHEN it runs with recording enabled
	path := filepath.Join(t.TempDir(), "run.cbor")
	require.NoError(t, runScenario(scenario, path))

	// THEN the recording holds one frame per pumped frame and the query
	// hit the plane
	frames, err := readRecording(path)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	var hits int
	for _, frame := range frames {
		hits += len(frame.HitTestResults)
	}
	assert.Greater(t, hits, 0)
}
