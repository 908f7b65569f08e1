package gesture

import (
	"testing"
	"time"
)

func TestHub_SubscribeUnsubscribe(t *testing.T) {
	var h Hub
	var a, b int
	unsubA := h.Subscribe(func(Event) { a++ })
	h.Subscribe(func(Event) { b++ })
	h.Publish(Event{Kind: EventResize})
	unsubA()
	unsubA()
	h.Publish(Event{Kind: EventResize})
	if a != 1 || b != 2 {
		t.Errorf("a=%d b=%d, want 1 and 2", a, b)
	}
	if h.Subscribers() != 1 {
		t.Errorf("Subscribers = %d, want 1", h.Subscribers())
	}
}

func TestVirtualSurface_OneBatchPerFrame(t *testing.T) {
	s := NewVirtualSurface(epoch)
	var got []Event
	s.Subscribe(func(ev Event) { got = append(got, ev) })

	s.InjectTap(3, DevicePen, 5, 6)
	if s.Queued() != 2 {
		t.Fatalf("Queued = %d, want 2", s.Queued())
	}
	if !s.Frame() || len(got) != 1 || got[0].Kind != EventStart {
		t.Fatalf("frame 1 delivered %v", got)
	}
	if !s.Frame() || len(got) != 2 || got[1].Kind != EventEnd || got[1].Device != DevicePen {
		t.Fatalf("frame 2 delivered %v", got)
	}
	if s.Frame() {
		t.Error("empty queue should deliver nothing")
	}
	if want := epoch.Add(3 * DefaultFrameInterval); !s.Now().Equal(want) {
		t.Errorf("Now = %v, want %v", s.Now(), want)
	}
}

func TestVirtualSurface_InjectDrag(t *testing.T) {
	s := NewVirtualSurface(epoch)
	var got []Event
	s.Subscribe(func(ev Event) { got = append(got, ev) })

	s.InjectDrag(1, DeviceMouse, 0, 0, 30, 0, 5)
	for s.Queued() > 0 {
		s.Frame()
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 events, got %d", len(got))
	}
	wantX := []float64{0, 7.5, 15, 22.5, 30}
	for i, ev := range got {
		if ev.X != wantX[i] {
			t.Errorf("event %d X = %v, want %v", i, ev.X, wantX[i])
		}
	}
	if got[0].Kind != EventStart || got[4].Kind != EventEnd {
		t.Errorf("drag should start with a press and finish with a release")
	}
}

func TestVirtualSurface_InjectPinchBatchesPairs(t *testing.T) {
	s := NewVirtualSurface(epoch)
	s.InjectPinch(1, 2, 100, 100, 50, 150, 4)
	if s.Queued() != 4 {
		t.Fatalf("Queued = %d, want 4", s.Queued())
	}
	var batch []Event
	s.Subscribe(func(ev Event) { batch = append(batch, ev) })
	s.Frame()
	if len(batch) != 2 || batch[0].X != 75 || batch[1].X != 125 {
		t.Errorf("first batch = %v, want contacts at 75 and 125", batch)
	}
}

func TestVirtualSurface_CustomFrameInterval(t *testing.T) {
	s := NewVirtualSurface(epoch)
	s.FrameInterval = 8 * time.Millisecond
	fired := false
	s.AfterFunc(20*time.Millisecond, func() { fired = true })
	s.Frame()
	s.Frame()
	if fired {
		t.Fatal("timer fired early")
	}
	s.Frame()
	if !fired {
		t.Error("timer should fire on the third 8ms frame")
	}
}
