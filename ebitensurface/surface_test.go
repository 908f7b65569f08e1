package ebitensurface

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gesture"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newRecording() (*Surface, *[]gesture.Event) {
	s := newSurface(epoch)
	var got []gesture.Event
	s.Subscribe(func(ev gesture.Event) { got = append(got, ev) })
	return s, &got
}

func focused() frameInput {
	return frameInput{focused: true}
}

func TestMousePressMoveRelease(t *testing.T) {
	s, got := newRecording()

	in := focused()
	in.cursorX, in.cursorY = 10, 20
	s.apply(in) // first sighting of the cursor
	in.left = true
	s.apply(in)
	in.cursorX = 30
	s.apply(in)
	s.apply(in) // unchanged
	in.left = false
	s.apply(in)

	want := []gesture.EventKind{gesture.EventMove, gesture.EventStart, gesture.EventMove, gesture.EventEnd}
	if len(*got) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), *got)
	}
	for i, ev := range *got {
		if ev.Kind != want[i] {
			t.Errorf("event %d = %v, want %v", i, ev.Kind, want[i])
		}
		if ev.ContactID != 0 || ev.Device != gesture.DeviceMouse {
			t.Errorf("event %d should be mouse contact 0: %+v", i, ev)
		}
	}
	if end := (*got)[3]; end.X != 30 || end.Y != 20 {
		t.Errorf("release at (%v,%v), want (30,20)", end.X, end.Y)
	}
}

func TestTouchSlots(t *testing.T) {
	s, got := newRecording()

	in := focused()
	in.touches = []touchPoint{{id: 7, x: 1, y: 1}}
	s.apply(in)
	in.touches = []touchPoint{{id: 7, x: 1, y: 1}, {id: 3, x: 50, y: 50}}
	s.apply(in)
	in.touches = []touchPoint{{id: 3, x: 60, y: 50}}
	s.apply(in)
	in.touches = nil
	s.apply(in)

	var touch []gesture.Event
	for _, ev := range *got {
		if ev.Device == gesture.DeviceTouch {
			touch = append(touch, ev)
		}
	}
	type want struct {
		kind gesture.EventKind
		id   int
		x    float64
	}
	wants := []want{
		{gesture.EventStart, 1, 1},
		{gesture.EventStart, 2, 50},
		{gesture.EventMove, 2, 60},
		{gesture.EventEnd, 1, 1},
		{gesture.EventEnd, 2, 60},
	}
	if len(touch) != len(wants) {
		t.Fatalf("expected %d touch events, got %v", len(wants), touch)
	}
	for i, w := range wants {
		ev := touch[i]
		if ev.Kind != w.kind || ev.ContactID != w.id || ev.X != w.x {
			t.Errorf("touch event %d = %v id=%d x=%v, want %v id=%d x=%v", i, ev.Kind, ev.ContactID, ev.X, w.kind, w.id, w.x)
		}
	}
	if tid, ok := touch[0].Native.(ebiten.TouchID); !ok || tid != 7 {
		t.Errorf("Native = %v, want the ebiten touch id", touch[0].Native)
	}
}

func TestTouchSlotReuse(t *testing.T) {
	s, got := newRecording()
	in := focused()
	in.touches = []touchPoint{{id: 1}}
	s.apply(in)
	in.touches = nil
	s.apply(in)
	in.touches = []touchPoint{{id: 2}}
	s.apply(in)

	last := (*got)[len(*got)-1]
	if last.Kind != gesture.EventStart || last.ContactID != 1 {
		t.Errorf("freed slot should be reused, got %+v", last)
	}
}

func TestTouchOverflowIgnored(t *testing.T) {
	s, got := newRecording()
	in := focused()
	for i := 0; i < 12; i++ {
		in.touches = append(in.touches, touchPoint{id: ebiten.TouchID(100 + i)})
	}
	s.apply(in)
	starts := 0
	for _, ev := range *got {
		if ev.Kind == gesture.EventStart {
			starts++
		}
	}
	if starts != maxPointers-1 {
		t.Errorf("starts = %d, want %d", starts, maxPointers-1)
	}
}

func TestTouchesPublishedBeforeMouse(t *testing.T) {
	s, got := newRecording()
	in := focused()
	in.left = true
	in.touches = []touchPoint{{id: 1, x: 5, y: 5}}
	s.apply(in)
	if len(*got) < 2 || (*got)[0].Device != gesture.DeviceTouch {
		t.Errorf("touch start should precede the mouse events, got %v", *got)
	}
}

func TestWheelScaleAndSign(t *testing.T) {
	s, got := newRecording()
	in := focused()
	in.wheelY = 1.5
	s.apply(in)

	var wheel *gesture.Event
	for i := range *got {
		if (*got)[i].Kind == gesture.EventWheel {
			wheel = &(*got)[i]
		}
	}
	if wheel == nil {
		t.Fatal("no wheel event")
	}
	if wheel.DeltaY != -150 {
		t.Errorf("DeltaY = %v, want -150", wheel.DeltaY)
	}
}

func TestFocusLossBlursOnce(t *testing.T) {
	s, got := newRecording()
	in := focused()
	in.left = true
	s.apply(in)

	in.focused = false
	s.apply(in)
	s.apply(in)

	blurs := 0
	for _, ev := range *got {
		if ev.Kind == gesture.EventBlur {
			blurs++
		}
		if ev.Kind == gesture.EventEnd {
			t.Error("focus loss should not publish releases")
		}
	}
	if blurs != 1 {
		t.Errorf("blurs = %d, want 1", blurs)
	}

	// Button still held when focus returns: a fresh press.
	*got = nil
	in.focused = true
	s.apply(in)
	if len(*got) == 0 || (*got)[len(*got)-1].Kind != gesture.EventStart {
		t.Errorf("expected a new press after refocus, got %v", *got)
	}
}

func TestLayoutResize(t *testing.T) {
	s, got := newRecording()
	s.Layout(800, 600)
	s.Layout(800, 600)
	if len(*got) != 0 {
		t.Fatalf("first layout should not resize, got %v", *got)
	}
	w, h := s.Layout(1024, 600)
	if w != 1024 || h != 600 {
		t.Errorf("Layout returned %dx%d", w, h)
	}
	if len(*got) != 1 || (*got)[0].Kind != gesture.EventResize {
		t.Errorf("expected one resize, got %v", *got)
	}
}

func TestDispatcherOnSurface(t *testing.T) {
	s := newSurface(epoch)
	d := gesture.New(s, gesture.DefaultConfig())
	defer d.Dispose()
	var clicks int
	d.OnClick(func(gesture.ClickContext) { clicks++ })

	in := focused()
	in.cursorX, in.cursorY = 100, 100
	s.apply(in)
	in.left = true
	s.Step(16 * time.Millisecond)
	s.apply(in)
	in.left = false
	s.Step(16 * time.Millisecond)
	s.apply(in)

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}
