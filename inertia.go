package gesture

import (
	"math"
	"time"
)

// inertiaState exists only while the coasting loop runs.
type inertiaState struct {
	vx, vy float64 // units per millisecond
	last   time.Time
	frame  Timer
}

// startInertia begins coasting with the release velocity, unless coasting is
// disabled or the release was too slow.
func (d *Dispatcher) startInertia(vx, vy float64) {
	if d.disposed || !d.cfg.Inertia {
		return
	}
	if math.Hypot(vx, vy) < d.cfg.InertiaMinSpeed {
		return
	}
	d.stopInertia()
	d.inertia = &inertiaState{vx: vx, vy: vy, last: d.now()}
	d.inertia.frame = d.sched.RequestFrame(d.inertiaStep)
	debugf(d.cfg.Debug, "coasting at (%.3f, %.3f) units/ms", vx, vy)
}

// inertiaStep runs once per frame. Decay is normalized to 16 ms so the
// deceleration feels the same at any frame rate.
//
// Each step moves by velocity times the frame's dt, so successive deltas only
// shrink when frames are evenly spaced. After a short frame the next, longer
// frame can move further even though the velocity has decayed.
func (d *Dispatcher) inertiaStep(now time.Time) {
	in := d.inertia
	if in == nil || d.disposed {
		return
	}
	dt := millis(now.Sub(in.last))
	if dt < 0 {
		dt = 0
	}
	in.last = now

	dx := finite(in.vx * dt)
	dy := finite(in.vy * dt)

	decay := finite(math.Pow(d.cfg.InertiaDecay, dt/inertiaFrameMs))
	in.vx *= decay
	in.vy *= decay

	speed := math.Hypot(in.vx, in.vy)
	if speed < d.cfg.InertiaMinSpeed || speed == 0 {
		in.frame = nil
		d.inertia = nil
		debugf(d.cfg.Debug, "coasting stopped")
	} else {
		in.frame = d.sched.RequestFrame(d.inertiaStep)
	}

	if dx != 0 || dy != 0 {
		d.emitDrag(DragContext{DeltaX: dx, DeltaY: dy, Inertial: true})
	}
}

// stopInertia cancels the coasting loop and zeroes its velocity.
func (d *Dispatcher) stopInertia() {
	in := d.inertia
	if in == nil {
		return
	}
	if in.frame != nil {
		in.frame.Stop()
		in.frame = nil
	}
	in.vx, in.vy = 0, 0
	d.inertia = nil
}
