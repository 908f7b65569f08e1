package gesture

import (
	"math"
	"time"
)

// tapRecord is the last touch tap that could start a double-tap.
type tapRecord struct {
	at   time.Time
	x, y float64
	set  bool
}

// tapState holds double-tap detection. A touch tap's click is held back for
// DoubleTapMs so that a double-tap produces only the zoom, never a click
// followed by a zoom.
type tapState struct {
	last    tapRecord
	pending *ClickContext
	timer   Timer
}

// tap routes a completed tap/click candidate. Touch taps go through
// double-tap detection; mouse and pen release straight to a click.
func (d *Dispatcher) tap(ev *Event, device DeviceKind) {
	ctx := ClickContext{X: ev.X, Y: ev.Y, Device: device, Source: ev}
	if device != DeviceTouch {
		d.settleTap()
		d.emitClick(ctx)
		return
	}

	if d.registerTap(ev.X, ev.Y) {
		d.dropPendingTap()
		d.emitWheel(WheelContext{DeltaY: d.cfg.DoubleTapZoomDelta, Origin: WheelFromDoubleTap})
		return
	}

	// An earlier tap that this one cannot pair with is final now.
	d.flushPendingTap()
	d.taps.pending = &ctx
	// The window is inclusive, so the record must outlive a second tap that
	// lands exactly DoubleTapMs later. Due timers run before that frame's
	// events are delivered.
	window := time.Duration(d.cfg.DoubleTapMs) * time.Millisecond
	d.taps.timer = d.sched.AfterFunc(window+time.Millisecond, d.expireTap)
}

// registerTap reports whether (x, y) completes a double-tap with the previous
// tap. A completed double-tap clears the record, so a third tap starts over.
func (d *Dispatcher) registerTap(x, y float64) bool {
	now := d.now()
	last := d.taps.last
	if last.set &&
		millis(now.Sub(last.at)) <= float64(d.cfg.DoubleTapMs) &&
		math.Hypot(x-last.x, y-last.y) <= doubleTapRadius {
		d.taps.last = tapRecord{}
		debugf(d.cfg.Debug, "double tap at (%.1f, %.1f)", x, y)
		return true
	}
	d.taps.last = tapRecord{at: now, x: x, y: y, set: true}
	return false
}

// expireTap runs when the double-tap window closes without a second tap.
func (d *Dispatcher) expireTap() {
	d.taps.timer = nil
	d.taps.last = tapRecord{}
	d.flushPendingTap()
}

// settleTap ends double-tap detection because the current interaction is not
// a tap. A held-back click is delivered before anything the new interaction
// emits.
func (d *Dispatcher) settleTap() {
	d.taps.last = tapRecord{}
	d.flushPendingTap()
}

func (d *Dispatcher) flushPendingTap() {
	if d.taps.timer != nil {
		d.taps.timer.Stop()
		d.taps.timer = nil
	}
	p := d.taps.pending
	if p == nil {
		return
	}
	d.taps.pending = nil
	d.emitClick(*p)
}

func (d *Dispatcher) dropPendingTap() {
	if d.taps.timer != nil {
		d.taps.timer.Stop()
		d.taps.timer = nil
	}
	d.taps.pending = nil
}
