package gesture

import (
	"math"
	"time"
)

// DefaultFrameInterval is the frame length VirtualSurface uses unless told
// otherwise (60 Hz, rounded).
const DefaultFrameInterval = 16 * time.Millisecond

type subscriber struct {
	id uint32
	fn func(Event)
}

// Hub fans events out to subscribers. Platform surfaces embed it next to a
// Loop to satisfy Surface.
type Hub struct {
	subs   []subscriber
	nextID uint32
}

// Subscribe registers fn and returns a function that removes it.
func (h *Hub) Subscribe(fn func(Event)) (unsubscribe func()) {
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscriber{id: id, fn: fn})
	return func() {
		for i := range h.subs {
			if h.subs[i].id == id {
				copy(h.subs[i:], h.subs[i+1:])
				h.subs[len(h.subs)-1] = subscriber{}
				h.subs = h.subs[:len(h.subs)-1]
				return
			}
		}
	}
}

// Subscribers returns the number of registered subscribers.
func (h *Hub) Subscribers() int {
	return len(h.subs)
}

// Publish delivers ev to every subscriber, in registration order.
func (h *Hub) Publish(ev Event) {
	for _, s := range h.subs {
		s.fn(ev)
	}
}

// VirtualSurface is a Surface with no platform behind it. Events are either
// emitted immediately with Emit, or queued with the Inject helpers and
// delivered one frame at a time by Frame, the same way a real host would poll
// them. It backs the replay tool and the tests.
type VirtualSurface struct {
	*Loop
	Hub

	// FrameInterval is how far Frame advances the clock.
	FrameInterval time.Duration

	queue [][]Event
}

// NewVirtualSurface creates a surface whose clock starts at start.
func NewVirtualSurface(start time.Time) *VirtualSurface {
	return &VirtualSurface{
		Loop:          NewLoop(start),
		FrameInterval: DefaultFrameInterval,
	}
}

// Emit delivers ev to subscribers right away, at the current clock time.
func (v *VirtualSurface) Emit(ev Event) {
	v.Publish(ev)
}

// Frame advances the clock by FrameInterval (running due timers and frame
// callbacks), then delivers the next queued batch of events. It reports
// whether a batch was delivered.
func (v *VirtualSurface) Frame() bool {
	v.Step(v.FrameInterval)
	if len(v.queue) == 0 {
		return false
	}
	batch := v.queue[0]
	copy(v.queue, v.queue[1:])
	v.queue[len(v.queue)-1] = nil
	v.queue = v.queue[:len(v.queue)-1]
	for _, ev := range batch {
		v.Publish(ev)
	}
	return true
}

// Queued returns the number of frames still holding injected events.
func (v *VirtualSurface) Queued() int {
	return len(v.queue)
}

// Inject queues events to be delivered together on one frame.
func (v *VirtualSurface) Inject(events ...Event) {
	batch := make([]Event, len(events))
	copy(batch, events)
	v.queue = append(v.queue, batch)
}

// InjectPress queues a contact start.
func (v *VirtualSurface) InjectPress(id int, device DeviceKind, x, y float64) {
	v.Inject(Event{Kind: EventStart, ContactID: id, Device: device, X: x, Y: y})
}

// InjectMove queues a contact move (or a hover move if id is not down).
func (v *VirtualSurface) InjectMove(id int, device DeviceKind, x, y float64) {
	v.Inject(Event{Kind: EventMove, ContactID: id, Device: device, X: x, Y: y})
}

// InjectRelease queues a contact end.
func (v *VirtualSurface) InjectRelease(id int, device DeviceKind, x, y float64) {
	v.Inject(Event{Kind: EventEnd, ContactID: id, Device: device, X: x, Y: y})
}

// InjectCancel queues a platform cancel for a contact.
func (v *VirtualSurface) InjectCancel(id int, device DeviceKind) {
	v.Inject(Event{Kind: EventCancel, ContactID: id, Device: device})
}

// InjectTap queues a press followed by a release at the same point.
// Consumes two frames.
func (v *VirtualSurface) InjectTap(id int, device DeviceKind, x, y float64) {
	v.InjectPress(id, device, x, y)
	v.InjectRelease(id, device, x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (v *VirtualSurface) InjectDrag(id int, device DeviceKind, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	v.InjectPress(id, device, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		v.InjectMove(id, device, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	v.InjectRelease(id, device, toX, toY)
}

// InjectPinch queues a horizontal two-finger pinch centred on (cx, cy): both
// touches go down fromDist apart, spread (or close) to toDist over frames-2
// intermediate frames, then lift together.
func (v *VirtualSurface) InjectPinch(idA, idB int, cx, cy, fromDist, toDist float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	half := fromDist / 2
	v.Inject(
		Event{Kind: EventStart, ContactID: idA, Device: DeviceTouch, X: cx - half, Y: cy},
		Event{Kind: EventStart, ContactID: idB, Device: DeviceTouch, X: cx + half, Y: cy},
	)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		half = (fromDist + (toDist-fromDist)*t) / 2
		v.Inject(
			Event{Kind: EventMove, ContactID: idA, Device: DeviceTouch, X: cx - half, Y: cy},
			Event{Kind: EventMove, ContactID: idB, Device: DeviceTouch, X: cx + half, Y: cy},
		)
	}
	half = math.Max(toDist, 0) / 2
	v.Inject(
		Event{Kind: EventEnd, ContactID: idA, Device: DeviceTouch, X: cx - half, Y: cy},
		Event{Kind: EventEnd, ContactID: idB, Device: DeviceTouch, X: cx + half, Y: cy},
	)
}

// InjectWheel queues a wheel event.
func (v *VirtualSurface) InjectWheel(deltaY float64) {
	v.Inject(Event{Kind: EventWheel, DeltaY: deltaY})
}

// InjectResize queues a resize notification.
func (v *VirtualSurface) InjectResize() {
	v.Inject(Event{Kind: EventResize})
}

// InjectBlur queues a focus loss.
func (v *VirtualSurface) InjectBlur() {
	v.Inject(Event{Kind: EventBlur})
}
