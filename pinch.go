package gesture

import (
	"math"
	"time"
)

// pinchState is the two-contact interaction.
type pinchState struct {
	pair          [2]int
	startDistance float64
	lastScale     float64
}

func (p *pinchState) involves(id int) bool {
	return p.pair[0] == id || p.pair[1] == id
}

// beginPinch designates the two oldest contacts as the pinch pair and drops
// any single-contact interaction. A pinch never turns back into a drag.
func (d *Dispatcher) beginPinch() {
	d.settleTap()
	if d.contacts.count() < 2 {
		return
	}
	a, b := d.contacts.firstPair()
	dist := finite(math.Hypot(b.X-a.X, b.Y-a.Y))
	if dist == 0 {
		dist = 1
	}

	d.stopInertia()
	d.clearHover()
	d.press = nil
	d.samples.reset()
	d.pinch = &pinchState{
		pair:          [2]int{a.ID, b.ID},
		startDistance: dist,
		lastScale:     1,
	}
	d.setMode(ModePinchActive)
}

// pinchMove converts the change in separation into a wheel delta. The step is
// log-scaled so the same finger motion zooms by the same proportion at any
// scale, and clamped so one noisy frame cannot jump the zoom.
func (d *Dispatcher) pinchMove(ev *Event) {
	p := d.pinch
	if !p.involves(ev.ContactID) {
		return
	}
	a, okA := d.contacts.get(p.pair[0])
	b, okB := d.contacts.get(p.pair[1])
	if !okA || !okB {
		return
	}
	dist := math.Hypot(b.X-a.X, b.Y-a.Y)
	if !(dist > 0) || math.IsInf(dist, 0) {
		return
	}

	scale := dist / p.startDistance
	delta := finite(math.Log2(scale) - math.Log2(p.lastScale))
	delta = clamp(delta, -pinchClamp, pinchClamp)
	p.lastScale = scale

	if math.Abs(delta) > pinchMinDelta {
		d.emitWheel(WheelContext{
			DeltaY: finite(delta * d.cfg.PinchToWheelScale),
			Origin: WheelFromPinch,
			Source: ev,
		})
	}
}

// endPinch tears the pinch down and arms the tap-suppression window so the
// remaining finger's release is not read as a tap. There is no inertia after
// a pinch.
func (d *Dispatcher) endPinch() {
	d.pinch = nil
	d.press = nil
	d.samples.reset()
	d.tapUntil = d.now().Add(tapSuppressMs * time.Millisecond)
	d.setMode(ModeIdle)
}
