package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phanxgames/gesture"
)

func TestReplayPrintsGestures(t *testing.T) {
	script, err := gesture.ParseScript([]byte(`
steps:
  - action: drag
    fromX: 0
    fromY: 0
    toX: 100
    toY: 0
    frames: 5
  - action: tap
    device: touch
    id: 1
    x: 10
    y: 10
  - action: wheel
    deltaY: 120
`), "yaml")
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	frames, done := replay(&out, gesture.DefaultConfig(), script, 1000)
	if !done {
		t.Fatalf("replay did not finish in %d frames", frames)
	}

	text := out.String()
	for _, want := range []string{"drag   dx=", "inertial", "click  x=10.0 y=10.0 device=touch", "wheel  dy=120.00 origin=device"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestReplayFrameLimit(t *testing.T) {
	script := &gesture.Script{Steps: []gesture.ScriptStep{{Action: "wait", Frames: 50}}}
	var out bytes.Buffer
	if _, done := replay(&out, gesture.DefaultConfig(), script, 10); done {
		t.Error("replay should report it ran out of frames")
	}
}

func TestReplayJobErrors(t *testing.T) {
	dir := t.TempDir()
	job := replayJob{scriptPath: filepath.Join(dir, "missing.json"), maxFrames: 100}
	if err := job.run(&bytes.Buffer{}); err == nil {
		t.Error("expected error for a missing script")
	}

	scriptPath := filepath.Join(dir, "s.json")
	os.WriteFile(scriptPath, []byte(`{"steps": [{"action": "resize"}]}`), 0o644)
	cfgPath := filepath.Join(dir, "c.yaml")
	os.WriteFile(cfgPath, []byte("inertia_decay: 3\n"), 0o644)
	job = replayJob{scriptPath: scriptPath, configPath: cfgPath, maxFrames: 100}
	if err := job.run(&bytes.Buffer{}); err == nil || !strings.Contains(err.Error(), "inertia_decay") {
		t.Errorf("expected config validation error, got %v", err)
	}

	os.WriteFile(cfgPath, []byte("inertia_decay: 0.5\n"), 0o644)
	var out bytes.Buffer
	if err := job.run(&out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "resize") || !strings.Contains(out.String(), "-- ") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestWatcherNotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.yaml")
	other := filepath.Join(dir, "other.txt")
	if err := os.WriteFile(path, []byte("steps: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := newWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	changed := make(chan string, 8)
	w.OnChange(func(p string) { changed <- p })
	w.Start()
	defer w.Stop()

	os.WriteFile(other, []byte("x"), 0o644)
	os.WriteFile(path, []byte("steps:\n  - action: blur\n"), 0o644)

	select {
	case p := <-changed:
		if filepath.Base(p) != "script.yaml" {
			t.Errorf("changed path = %s, want script.yaml", p)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}
