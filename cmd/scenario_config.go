package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioConfig is a headless device scenario, loadable from a YAML
// file: the device to simulate, the session to request, persistent
// hit-test queries, and a script of timed control commands.
type ScenarioConfig struct {
	Device   DeviceConfig    `yaml:"device"`
	Session  SessionConfig   `yaml:"session"`
	HitTests []HitTestConfig `yaml:"hit_tests"`
	Frames   int             `yaml:"frames"`
	Script   []StepConfig    `yaml:"script"`
}

// DeviceConfig configures the simulated device.
type DeviceConfig struct {
	SupportedFeatures []string         `yaml:"supported_features"`
	SupportsInline    bool             `yaml:"supports_inline"`
	SupportsVR        bool             `yaml:"supports_vr"`
	SupportsAR        bool             `yaml:"supports_ar"`
	ViewerOrigin      *TransformConfig `yaml:"viewer_origin"`
	FloorOrigin       *TransformConfig `yaml:"floor_origin"`
	Views             ViewsConfig      `yaml:"views"`
	World             []RegionConfig   `yaml:"world"`
}

// SessionConfig configures the session request.
type SessionConfig struct {
	Mode             string   `yaml:"mode"`
	RequiredFeatures []string `yaml:"required_features"`
	OptionalFeatures []string `yaml:"optional_features"`
}

// TransformConfig is a rigid transform: a translation plus an optional
// axis-angle rotation.
type TransformConfig struct {
	Translation []float64 `yaml:"translation"` // [x y z]
	Axis        []float64 `yaml:"axis"`        // rotation axis [x y z], optional
	AngleDeg    float64   `yaml:"angle_deg"`   // rotation about Axis, degrees
}

// FOVConfig is a field of view as half-angles in degrees. Down and Left
// are typically negative.
type FOVConfig struct {
	UpDeg    float64 `yaml:"up_deg"`
	DownDeg  float64 `yaml:"down_deg"`
	LeftDeg  float64 `yaml:"left_deg"`
	RightDeg float64 `yaml:"right_deg"`
}

// ViewConfig configures one eye's raw view.
type ViewConfig struct {
	Transform *TransformConfig `yaml:"transform"`
	FOV       *FOVConfig       `yaml:"fov"`
	Viewport  []int32          `yaml:"viewport"` // [x y width height]
}

// ViewsConfig selects the raw view configuration variant.
type ViewsConfig struct {
	Kind  string      `yaml:"kind"` // mono | stereo
	Mono  *ViewConfig `yaml:"mono"`
	Left  *ViewConfig `yaml:"left"`
	Right *ViewConfig `yaml:"right"`
}

// RegionConfig is one world region: a type and its triangle faces.
type RegionConfig struct {
	Type  string        `yaml:"type"`  // point | plane | mesh
	Faces [][][]float64 `yaml:"faces"` // each face: three [x y z] vertices
}

// HitTestConfig is one persistent hit-test query registered at session
// start.
type HitTestConfig struct {
	Base      string           `yaml:"base"`  // local | floor | viewer | target-ray | grip
	Input     uint32           `yaml:"input"` // input id for target-ray/grip bases
	Offset    *TransformConfig `yaml:"offset"`
	Origin    []float64        `yaml:"origin"`
	Direction []float64        `yaml:"direction"`
	Types     []string         `yaml:"types"` // empty = all region types
}

// StepConfig is one scripted control command, sent before the given
// frame index.
type StepConfig struct {
	Frame         int              `yaml:"frame"`
	Command       string           `yaml:"command"`
	Visibility    string           `yaml:"visibility"`
	Input         uint32           `yaml:"input"`
	Handedness    string           `yaml:"handedness"`
	TargetRayMode string           `yaml:"target_ray_mode"`
	Profiles      []string         `yaml:"profiles"`
	Pointer       *TransformConfig `yaml:"pointer"`
	Kind          string           `yaml:"kind"`  // select | squeeze
	Phase         string           `yaml:"phase"` // start | end | select
	Origin        *TransformConfig `yaml:"origin"`
}

// LoadScenario reads and parses a YAML scenario file.
func LoadScenario(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var scenario ScenarioConfig
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &scenario, nil
}

// ValidModes is the set of recognized session modes.
var ValidModes = map[string]bool{"inline": true, "immersive-vr": true, "immersive-ar": true}

// ValidViewsKinds is the set of recognized raw view configuration kinds.
var ValidViewsKinds = map[string]bool{"": true, "mono": true, "stereo": true}

// ValidEntityTypes is the set of recognized world region types.
var ValidEntityTypes = map[string]bool{"point": true, "plane": true, "mesh": true}

// ValidBaseSpaces is the set of recognized hit-test base spaces.
var ValidBaseSpaces = map[string]bool{"local": true, "floor": true, "viewer": true, "target-ray": true, "grip": true}

// ValidVisibilities is the set of recognized visibility states.
var ValidVisibilities = map[string]bool{"visible": true, "visible-blurred": true, "hidden": true}

// ValidHandedness is the set of recognized handedness values.
var ValidHandedness = map[string]bool{"": true, "none": true, "left": true, "right": true}

// ValidTargetRayModes is the set of recognized target-ray modes.
var ValidTargetRayModes = map[string]bool{"": true, "gaze": true, "tracked-pointer": true, "screen": true}

// ValidSelectKinds is the set of recognized select gesture kinds.
var ValidSelectKinds = map[string]bool{"": true, "select": true, "squeeze": true}

// ValidSelectPhases is the set of recognized select gesture phases.
var ValidSelectPhases = map[string]bool{"start": true, "end": true, "select": true}

// ValidCommands is the set of recognized script commands.
var ValidCommands = map[string]bool{
	"visibility":        true,
	"add-input":         true,
	"select":            true,
	"set-pointer":       true,
	"disconnect-input":  true,
	"reconnect-input":   true,
	"set-viewer-origin": true,
	"set-floor-origin":  true,
	"clear-world":       true,
}

// Validate checks that every enumerated name in the scenario is
// recognized and that structural requirements hold.
func (c *ScenarioConfig) Validate() error {
	if !ValidModes[c.Session.Mode] {
		return fmt.Errorf("unknown session mode %q", c.Session.Mode)
	}
	if !ValidViewsKinds[c.Device.Views.Kind] {
		return fmt.Errorf("unknown views kind %q", c.Device.Views.Kind)
	}
	if c.Frames < 0 {
		return fmt.Errorf("frames must be non-negative, got %d", c.Frames)
	}
	for _, region := range c.Device.World {
		if !ValidEntityTypes[region.Type] {
			return fmt.Errorf("unknown region type %q", region.Type)
		}
		for _, face := range region.Faces {
			if len(face) != 3 {
				return fmt.Errorf("region face must have 3 vertices, got %d", len(face))
			}
		}
	}
	for _, ht := range c.HitTests {
		if !ValidBaseSpaces[ht.Base] {
			return fmt.Errorf("unknown hit-test base space %q", ht.Base)
		}
		for _, ty := range ht.Types {
			if !ValidEntityTypes[ty] {
				return fmt.Errorf("unknown hit-test type filter %q", ty)
			}
		}
	}
	for i, step := range c.Script {
		if !ValidCommands[step.Command] {
			return fmt.Errorf("script[%d]: unknown command %q", i, step.Command)
		}
		switch step.Command {
		case "visibility":
			if !ValidVisibilities[step.Visibility] {
				return fmt.Errorf("script[%d]: unknown visibility %q", i, step.Visibility)
			}
		case "add-input":
			if !ValidHandedness[step.Handedness] {
				return fmt.Errorf("script[%d]: unknown handedness %q", i, step.Handedness)
			}
			if !ValidTargetRayModes[step.TargetRayMode] {
				return fmt.Errorf("script[%d]: unknown target-ray mode %q", i, step.TargetRayMode)
			}
		case "select":
			if !ValidSelectKinds[step.Kind] {
				return fmt.Errorf("script[%d]: unknown select kind %q", i, step.Kind)
			}
			if !ValidSelectPhases[step.Phase] {
				return fmt.Errorf("script[%d]: unknown select phase %q", i, step.Phase)
			}
		}
	}
	return nil
}
