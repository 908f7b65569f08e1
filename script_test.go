package gesture

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestParseScript_JSON(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "tap", "device": "touch", "id": 1, "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "drag", "fromX": 0, "fromY": 0, "toX": 50, "toY": 0, "frames": 6}
		]
	}`)

	script, err := ParseScript(data, "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(script.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(script.Steps))
	}
	if s := script.Steps[0]; s.Action != "tap" || s.Device != "touch" || s.X != 100 || s.Y != 200 {
		t.Errorf("step 0 mismatch: %+v", s)
	}
	if s := script.Steps[2]; s.ToX != 50 || s.Frames != 6 {
		t.Errorf("step 2 mismatch: %+v", s)
	}
}

func TestParseScript_YAML(t *testing.T) {
	data := []byte(`
steps:
  - action: pinch
    id: 1
    id2: 2
    x: 200
    y: 200
    fromDist: 100
    toDist: 200
    frames: 5
  - action: wheel
    deltaY: 120
`)
	script, err := ParseScript(data, ".yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := script.Steps[0]; s.ID2 != 2 || s.FromDist != 100 || s.ToDist != 200 {
		t.Errorf("step 0 mismatch: %+v", s)
	}
	if s := script.Steps[1]; s.DeltaY != 120 {
		t.Errorf("step 1 mismatch: %+v", s)
	}
}

func TestParseScript_Invalid(t *testing.T) {
	tests := []struct {
		name, data, format string
	}{
		{"not json", `not json`, "json"},
		{"empty", `{"steps": []}`, "json"},
		{"unknown action", `{"steps": [{"action": "screenshot"}]}`, "json"},
		{"unknown device", `{"steps": [{"action": "tap", "device": "trackball"}]}`, "json"},
		{"unknown format", `steps = []`, "toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScript([]byte(tt.data), tt.format); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taps.yml")
	if err := os.WriteFile(path, []byte("steps:\n  - action: blur\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	script, err := LoadScript(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(script.Steps) != 1 || script.Steps[0].Action != "blur" {
		t.Errorf("steps = %+v", script.Steps)
	}
}

func runScript(t *testing.T, src string) (*Dispatcher, *recorded) {
	t.Helper()
	script, err := ParseScript([]byte(src), "json")
	if err != nil {
		t.Fatal(err)
	}
	s, d, r := newTestDispatcher(t, DefaultConfig())
	runner := NewScriptRunner(script, s)
	runner.Run(1000)
	if !runner.Done() {
		t.Fatal("script did not finish")
	}
	return d, r
}

func TestScriptRunner_Drag(t *testing.T) {
	_, r := runScript(t, `{"steps": [
		{"action": "drag", "fromX": 10, "fromY": 10, "toX": 110, "toY": 60, "frames": 6}
	]}`)
	var live []DragContext
	for _, dr := range r.drags {
		if !dr.Inertial {
			live = append(live, dr)
		}
	}
	sx, sy := sumDrags(live)
	if math.Abs(sx-100) > 1e-9 || math.Abs(sy-50) > 1e-9 {
		t.Errorf("live drag sum = (%v,%v), want (100,50)", sx, sy)
	}
	if len(r.clicks) != 0 {
		t.Errorf("expected no clicks, got %d", len(r.clicks))
	}
}

func TestScriptRunner_DoubleTapThenWait(t *testing.T) {
	_, r := runScript(t, `{"steps": [
		{"action": "tap", "device": "touch", "id": 1, "x": 40, "y": 40},
		{"action": "tap", "device": "touch", "id": 2, "x": 42, "y": 41},
		{"action": "wait", "ms": 500}
	]}`)
	if len(r.wheels) != 1 || r.wheels[0].Origin != WheelFromDoubleTap {
		t.Errorf("expected one double-tap wheel, got %v", r.wheels)
	}
	if len(r.clicks) != 0 {
		t.Errorf("expected no clicks, got %d", len(r.clicks))
	}
}

func TestScriptRunner_Pinch(t *testing.T) {
	d, r := runScript(t, `{"steps": [
		{"action": "pinch", "id": 1, "id2": 2, "x": 200, "y": 200, "fromDist": 100, "toDist": 200, "frames": 6},
		{"action": "wait", "ms": 100}
	]}`)
	if len(r.wheels) == 0 {
		t.Fatal("expected pinch wheels")
	}
	var total float64
	for _, w := range r.wheels {
		total += w.DeltaY
	}
	if total > -319 || total < -321 {
		t.Errorf("total pinch delta = %v, want about -320 for a 2x spread", total)
	}
	if d.Mode() != ModeIdle || d.Contacts() != 0 {
		t.Errorf("after pinch: mode=%v contacts=%d", d.Mode(), d.Contacts())
	}
}

func TestScriptRunner_WaitFrames(t *testing.T) {
	script, err := ParseScript([]byte(`{"steps": [
		{"action": "wheel", "deltaY": 1},
		{"action": "wait", "frames": 4},
		{"action": "wheel", "deltaY": 2}
	]}`), "json")
	if err != nil {
		t.Fatal(err)
	}
	s, _, r := newTestDispatcher(t, DefaultConfig())
	runner := NewScriptRunner(script, s)

	runner.Step()
	if len(r.wheels) != 1 {
		t.Fatalf("expected first wheel on frame 1, got %d", len(r.wheels))
	}
	for i := 0; i < 4; i++ {
		runner.Step()
	}
	if len(r.wheels) != 1 {
		t.Fatalf("second wheel arrived during the wait")
	}
	runner.Step()
	if len(r.wheels) != 2 || r.wheels[1].DeltaY != 2 {
		t.Errorf("expected second wheel after the wait, got %v", r.wheels)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}
