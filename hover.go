package gesture

import "time"

// hoverState is the leading+trailing throttle for hover emissions. At most
// one trailing emission is pending; newer positions overwrite it.
type hoverState struct {
	last    time.Time
	emitted bool
	pending *HoverContext
	timer   Timer
}

func (d *Dispatcher) hoverMove(ev *Event) {
	if d.mode != ModeIdle || !d.wantsHover() {
		return
	}
	now := d.now()
	throttle := time.Duration(d.cfg.HoverThrottleMs) * time.Millisecond
	ctx := HoverContext{X: ev.X, Y: ev.Y, Source: ev}

	elapsed := now.Sub(d.hover.last)
	if !d.hover.emitted || elapsed >= throttle {
		d.clearHover()
		d.hover.last = now
		d.hover.emitted = true
		d.emitHover(ctx)
		return
	}

	d.hover.pending = &ctx
	if d.hover.timer == nil {
		d.hover.timer = d.sched.AfterFunc(throttle-elapsed, d.flushHover)
	}
}

func (d *Dispatcher) flushHover() {
	d.hover.timer = nil
	p := d.hover.pending
	if p == nil || d.disposed || d.mode != ModeIdle {
		d.hover.pending = nil
		return
	}
	d.hover.pending = nil
	d.hover.last = d.now()
	d.emitHover(*p)
}

// clearHover drops a pending trailing emission.
func (d *Dispatcher) clearHover() {
	if d.hover.timer != nil {
		d.hover.timer.Stop()
		d.hover.timer = nil
	}
	d.hover.pending = nil
}
