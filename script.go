package gesture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ScriptStep is a single action in a replay script.
type ScriptStep struct {
	Action string  `json:"action" yaml:"action"`
	ID     int     `json:"id,omitempty" yaml:"id,omitempty"`
	ID2    int     `json:"id2,omitempty" yaml:"id2,omitempty"`
	Device string  `json:"device,omitempty" yaml:"device,omitempty"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty" yaml:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty" yaml:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty" yaml:"toY,omitempty"`
	// FromDist and ToDist are the finger separation for "pinch".
	FromDist float64 `json:"fromDist,omitempty" yaml:"fromDist,omitempty"`
	ToDist   float64 `json:"toDist,omitempty" yaml:"toDist,omitempty"`
	DeltaY   float64 `json:"deltaY,omitempty" yaml:"deltaY,omitempty"`
	Frames   int     `json:"frames,omitempty" yaml:"frames,omitempty"`
	Ms       int     `json:"ms,omitempty" yaml:"ms,omitempty"`
}

// Script is the top-level structure of a replay script.
type Script struct {
	Steps []ScriptStep `json:"steps" yaml:"steps"`
}

var scriptActions = map[string]bool{
	"press": true, "move": true, "release": true, "cancel": true,
	"tap": true, "drag": true, "pinch": true,
	"wheel": true, "resize": true, "blur": true, "wait": true,
}

// ParseScript decodes a JSON or YAML script. format is "json", "yaml" or
// "yml".
func ParseScript(data []byte, format string) (*Script, error) {
	var script Script
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		if err := json.Unmarshal(data, &script); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &script); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
	default:
		return nil, fmt.Errorf("parse script: unsupported format %q", format)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if _, err := parseDevice(st.Device); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &script, nil
}

// LoadScript reads a script file, picking the decoder from its extension.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data, filepath.Ext(path))
}

func parseDevice(s string) (DeviceKind, error) {
	switch strings.ToLower(s) {
	case "", "mouse":
		return DeviceMouse, nil
	case "touch":
		return DeviceTouch, nil
	case "pen":
		return DevicePen, nil
	default:
		return 0, fmt.Errorf("unknown device %q", s)
	}
}

// ScriptRunner sequences a script's steps across frames of a VirtualSurface.
type ScriptRunner struct {
	steps     []ScriptStep
	surface   *VirtualSurface
	cursor    int
	waitCount int
	done      bool
}

// NewScriptRunner prepares script to be played on surface.
func NewScriptRunner(script *Script, surface *VirtualSurface) *ScriptRunner {
	return &ScriptRunner{steps: script.Steps, surface: surface}
}

// Done reports whether all steps have been executed and delivered.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the script by one frame: it queues the next step's events
// when the surface has drained the previous ones, then runs one surface frame.
func (r *ScriptRunner) Step() {
	if r.done {
		return
	}
	if r.surface.Queued() == 0 {
		if r.waitCount > 0 {
			r.waitCount--
		} else if r.cursor < len(r.steps) {
			st := r.steps[r.cursor]
			r.cursor++
			r.exec(st)
		}
	}
	r.surface.Frame()

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.surface.Queued() == 0 {
		r.done = true
	}
}

// Run steps until the script is done or maxFrames frames have run. It returns
// the number of frames used.
func (r *ScriptRunner) Run(maxFrames int) int {
	n := 0
	for !r.done && n < maxFrames {
		r.Step()
		n++
	}
	return n
}

func (r *ScriptRunner) exec(st ScriptStep) {
	dev, _ := parseDevice(st.Device)
	s := r.surface
	switch st.Action {
	case "press":
		s.InjectPress(st.ID, dev, st.X, st.Y)
	case "move":
		s.InjectMove(st.ID, dev, st.X, st.Y)
	case "release":
		s.InjectRelease(st.ID, dev, st.X, st.Y)
	case "cancel":
		s.InjectCancel(st.ID, dev)
	case "tap":
		s.InjectTap(st.ID, dev, st.X, st.Y)
	case "drag":
		s.InjectDrag(st.ID, dev, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		idB := st.ID2
		if idB == st.ID {
			idB = st.ID + 1
		}
		s.InjectPinch(st.ID, idB, st.X, st.Y, st.FromDist, st.ToDist, st.Frames)
	case "wheel":
		s.InjectWheel(st.DeltaY)
	case "resize":
		s.InjectResize()
	case "blur":
		s.InjectBlur()
	case "wait":
		frames := st.Frames
		if st.Ms > 0 && s.FrameInterval > 0 {
			wait := time.Duration(st.Ms) * time.Millisecond
			frames += int((wait + s.FrameInterval - 1) / s.FrameInterval)
		}
		if frames > 0 {
			r.waitCount = frames - 1 // this frame counts as one
		}
	}
}
