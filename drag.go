package gesture

import "time"

// press is the single-contact interaction: a click/tap candidate until it
// moves past the dead zone, a drag afterwards.
type press struct {
	id     int
	device DeviceKind
	// anchor is re-seeded after every drag emission so deltas are incremental.
	anchorX, anchorY float64
}

func (d *Dispatcher) beginPress(ev *Event) {
	d.stopInertia()
	d.clearHover()
	d.press = &press{id: ev.ContactID, device: ev.Device, anchorX: ev.X, anchorY: ev.Y}
	d.setMode(ModeIdle)
	d.samples.reset()
	d.samples.add(d.now(), ev.X, ev.Y)
}

// dragMove handles motion of the primary contact. Nothing is emitted until the
// contact leaves the dead zone around its start point.
func (d *Dispatcher) dragMove(ev *Event) {
	p := d.press
	dx := ev.X - p.anchorX
	dy := ev.Y - p.anchorY

	if d.mode != ModeDragging {
		dz := d.cfg.DragDeadZone
		if dx*dx+dy*dy <= dz*dz {
			return
		}
		d.settleTap()
		if d.press != p {
			// A click handler cancelled the interaction.
			return
		}
		d.setMode(ModeDragging)
		d.clearHover()
	}
	if dx == 0 && dy == 0 {
		return
	}

	p.anchorX, p.anchorY = ev.X, ev.Y
	d.samples.add(d.now(), ev.X, ev.Y)
	d.emitDrag(DragContext{DeltaX: finite(dx), DeltaY: finite(dy), Source: ev})
}

// releasePress ends the primary contact normally: a drag hands its velocity to
// the inertia engine, anything else is a tap/click candidate.
func (d *Dispatcher) releasePress(ev *Event) {
	p := d.press

	// Report movement between the last move and the release point so the
	// deltas add up to the full displacement.
	d.dragMove(ev)
	if d.press != p {
		// A drag handler cancelled the interaction.
		return
	}

	if d.mode == ModeDragging {
		d.samples.add(d.now(), ev.X, ev.Y)
		vx, vy := d.samples.velocity()
		d.endPress()
		d.startInertia(vx, vy)
		return
	}

	d.endPress()
	if d.now().Before(d.tapUntil) {
		// Taps right after a pinch are leftovers of it.
		d.tapUntil = time.Time{}
		debugf(d.cfg.Debug, "tap swallowed after pinch")
		return
	}
	d.tap(ev, p.device)
}

// endPress discards the single-contact interaction without emitting.
func (d *Dispatcher) endPress() {
	d.press = nil
	d.samples.reset()
	d.setMode(ModeIdle)
}
