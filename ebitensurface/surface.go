// Package ebitensurface feeds Ebitengine's polled mouse, wheel and touch
// state into a gesture.Dispatcher.
//
// Ebitengine reports input as per-frame state rather than events, so the
// surface diffs each frame against the previous one and publishes the
// transitions. Call Update at the top of your game's Update and Layout from
// your game's Layout.
package ebitensurface

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gesture"
)

// maxPointers is the number of contact slots: 0 is the mouse, 1-9 are
// touches. Touches beyond the ninth are ignored.
const maxPointers = 10

// DefaultWheelScale converts one ebiten wheel notch into wheel units.
const DefaultWheelScale = 100

type touchPoint struct {
	id   ebiten.TouchID
	x, y float64
}

// frameInput is one frame's polled input.
type frameInput struct {
	cursorX, cursorY float64
	left             bool
	touches          []touchPoint
	wheelY           float64
	focused          bool
}

type slot struct {
	used         bool
	seen         bool // present in the current frame
	tid          ebiten.TouchID
	lastX, lastY float64
}

// Surface is a gesture.Surface backed by Ebitengine.
type Surface struct {
	*gesture.Loop
	gesture.Hub

	// WheelScale multiplies ebiten's wheel offset. Ebiten reports scrolling
	// up as positive; the sign is flipped so positive means zoom out.
	WheelScale float64

	mouseDown     bool
	cursorKnown   bool
	cursorX       float64
	cursorY       float64
	touches       [maxPointers]slot
	focused       bool
	width, height int

	touchIDs []ebiten.TouchID
	polled   []touchPoint
}

// New creates a Surface whose clock starts now.
func New() *Surface {
	return newSurface(time.Now())
}

func newSurface(start time.Time) *Surface {
	return &Surface{
		Loop:       gesture.NewLoop(start),
		WheelScale: DefaultWheelScale,
		focused:    true,
	}
}

// Update advances the surface clock (running due coasting frames and
// timeouts) and publishes this frame's input.
func (s *Surface) Update() {
	s.Advance(time.Now())
	s.apply(s.poll())
}

// Layout publishes a resize when the outside size changes and returns it
// unchanged, so it can be returned from ebiten.Game.Layout.
func (s *Surface) Layout(outsideWidth, outsideHeight int) (int, int) {
	if s.width != 0 && (outsideWidth != s.width || outsideHeight != s.height) {
		s.Publish(gesture.Event{Kind: gesture.EventResize})
	}
	s.width, s.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (s *Surface) poll() frameInput {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	in := frameInput{
		cursorX: float64(mx),
		cursorY: float64(my),
		left:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		wheelY:  wy,
		focused: ebiten.IsFocused(),
	}
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	s.polled = s.polled[:0]
	for _, tid := range s.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		s.polled = append(s.polled, touchPoint{id: tid, x: float64(tx), y: float64(ty)})
	}
	in.touches = s.polled
	return in
}

// apply diffs in against the previous frame and publishes the changes.
// Touches go first so a touch start arms mouse suppression before any
// compatibility mouse events from the same frame.
func (s *Surface) apply(in frameInput) {
	if !in.focused {
		if s.focused {
			s.focused = false
			s.forget()
			s.Publish(gesture.Event{Kind: gesture.EventBlur})
		}
		return
	}
	s.focused = true

	s.applyTouches(in.touches)
	s.applyMouse(in)

	if in.wheelY != 0 {
		s.Publish(gesture.Event{Kind: gesture.EventWheel, DeltaY: -in.wheelY * s.WheelScale})
	}
}

func (s *Surface) applyTouches(touches []touchPoint) {
	for i := 1; i < maxPointers; i++ {
		s.touches[i].seen = false
	}

	for _, tp := range touches {
		id := s.touchSlot(tp.id)
		if id < 0 {
			continue
		}
		sl := &s.touches[id]
		sl.seen = true
		if !sl.used {
			sl.used = true
			sl.tid = tp.id
			sl.lastX, sl.lastY = tp.x, tp.y
			s.publishContact(gesture.EventStart, id, gesture.DeviceTouch, tp.x, tp.y, tp.id)
			continue
		}
		if tp.x != sl.lastX || tp.y != sl.lastY {
			sl.lastX, sl.lastY = tp.x, tp.y
			s.publishContact(gesture.EventMove, id, gesture.DeviceTouch, tp.x, tp.y, tp.id)
		}
	}

	for i := 1; i < maxPointers; i++ {
		sl := &s.touches[i]
		if sl.used && !sl.seen {
			s.publishContact(gesture.EventEnd, i, gesture.DeviceTouch, sl.lastX, sl.lastY, sl.tid)
			*sl = slot{}
		}
	}
}

// touchSlot returns the slot already holding tid, or claims a free one.
// Returns -1 if all slots are taken.
func (s *Surface) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touches[i].used && s.touches[i].tid == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touches[i].used {
			return i
		}
	}
	return -1
}

func (s *Surface) applyMouse(in frameInput) {
	x, y := in.cursorX, in.cursorY
	moved := !s.cursorKnown || x != s.cursorX || y != s.cursorY
	s.cursorKnown = true
	s.cursorX, s.cursorY = x, y

	switch {
	case in.left && !s.mouseDown:
		s.mouseDown = true
		s.publishContact(gesture.EventStart, 0, gesture.DeviceMouse, x, y, nil)
	case !in.left && s.mouseDown:
		s.mouseDown = false
		s.publishContact(gesture.EventEnd, 0, gesture.DeviceMouse, x, y, nil)
	case moved:
		s.publishContact(gesture.EventMove, 0, gesture.DeviceMouse, x, y, nil)
	}
}

func (s *Surface) publishContact(kind gesture.EventKind, id int, dev gesture.DeviceKind, x, y float64, native any) {
	s.Publish(gesture.Event{Kind: kind, ContactID: id, Device: dev, X: x, Y: y, Native: native})
}

// forget drops all held contacts without publishing releases; the blur that
// follows tells the dispatcher to cancel them.
func (s *Surface) forget() {
	s.mouseDown = false
	s.cursorKnown = false
	for i := range s.touches {
		s.touches[i] = slot{}
	}
}
