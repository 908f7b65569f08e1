package gesture

import (
	"math"
	"time"
)

// Surface is the host platform a Dispatcher attaches to: the source of input
// events and of time, frames and timeouts. Subscribe must deliver events on
// the same goroutine that drives the Scheduler.
type Surface interface {
	Scheduler
	// Subscribe registers handler for every input event and returns a
	// function that removes it.
	Subscribe(handler func(Event)) (unsubscribe func())
}

// Dispatcher turns a Surface's raw events into drag, click, wheel, resize and
// hover callbacks. It is single-threaded: all methods and callbacks run on
// the goroutine that drives the Surface.
type Dispatcher struct {
	cfg         Config
	sched       Scheduler
	unsubscribe func()
	disposed    bool

	handlers handlerRegistry
	recorder Recorder

	contacts registry
	mode     Mode
	press    *press      // non-nil while a single contact is primary
	pinch    *pinchState // non-nil iff mode == ModePinchActive
	samples  sampler
	taps     tapState
	inertia  *inertiaState
	hover    hoverState

	// suppression windows ("valid until")
	mouseUntil time.Time
	tapUntil   time.Time
}

// New attaches a Dispatcher to surface. cfg is copied; later changes to the
// caller's value have no effect.
func New(surface Surface, cfg Config) *Dispatcher {
	d := &Dispatcher{cfg: cfg, sched: surface}
	d.unsubscribe = surface.Subscribe(d.handle)
	return d
}

// Config returns the configuration the dispatcher was built with.
func (d *Dispatcher) Config() Config {
	return d.cfg
}

// Mode returns the current interaction mode.
func (d *Dispatcher) Mode() Mode {
	return d.mode
}

// Contacts returns the number of contacts currently down.
func (d *Dispatcher) Contacts() int {
	return d.contacts.count()
}

// Coasting reports whether an inertia loop is running.
func (d *Dispatcher) Coasting() bool {
	return d.inertia != nil
}

// Dispose detaches from the surface and cancels any running inertia loop,
// pending hover emission and held-back tap. No callback fires afterwards.
// Dispose is idempotent.
func (d *Dispatcher) Dispose() {
	if d.disposed {
		return
	}
	d.disposed = true
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
	d.reset()
	debugf(d.cfg.Debug, "disposed")
}

// CancelAll drops every contact and in-flight interaction without emitting
// anything. Surfaces trigger it with EventBlur when focus is lost.
func (d *Dispatcher) CancelAll() {
	if d.disposed {
		return
	}
	d.reset()
	debugf(d.cfg.Debug, "all interactions cancelled")
}

func (d *Dispatcher) reset() {
	d.contacts.clear()
	d.press = nil
	d.pinch = nil
	d.samples.reset()
	d.setMode(ModeIdle)
	d.stopInertia()
	d.clearHover()
	d.dropPendingTap()
	d.taps.last = tapRecord{}
}

func (d *Dispatcher) now() time.Time {
	return d.sched.Now()
}

func (d *Dispatcher) setMode(m Mode) {
	if d.mode == m {
		return
	}
	debugf(d.cfg.Debug, "mode %s -> %s", d.mode, m)
	d.mode = m
}

// handle classifies one platform event. Events are processed to completion in
// delivery order.
func (d *Dispatcher) handle(ev Event) {
	if d.disposed {
		return
	}
	if d.ghostMouse(&ev) {
		return
	}
	if !d.finitePosition(&ev) {
		debugf(d.cfg.Debug, "dropped %s for contact %d at (%v, %v)", ev.Kind, ev.ContactID, ev.X, ev.Y)
		return
	}
	switch ev.Kind {
	case EventStart:
		d.contactStart(&ev)
	case EventMove:
		d.contactMove(&ev)
	case EventEnd:
		d.contactEnd(&ev, false)
	case EventCancel:
		d.contactEnd(&ev, true)
	case EventWheel:
		d.emitWheel(WheelContext{DeltaY: finite(ev.DeltaY), Origin: WheelFromDevice, Source: &ev})
	case EventResize:
		d.emitResize()
	case EventBlur:
		d.CancelAll()
	}
}

// finitePosition reports whether a contact event carries a usable position.
// A release at a garbage position is moved to the contact's last known one so
// the contact is still freed.
func (d *Dispatcher) finitePosition(ev *Event) bool {
	switch ev.Kind {
	case EventStart, EventMove, EventEnd:
	default:
		return true
	}
	if !math.IsNaN(ev.X) && !math.IsInf(ev.X, 0) && !math.IsNaN(ev.Y) && !math.IsInf(ev.Y, 0) {
		return true
	}
	if ev.Kind != EventEnd {
		return false
	}
	c, ok := d.contacts.get(ev.ContactID)
	if !ok {
		return false
	}
	ev.X, ev.Y = c.X, c.Y
	return true
}

// ghostMouse reports whether ev is a mouse event the platform synthesized
// from a recent touch. Events for a mouse contact that is already down still
// pass so the contact can be released.
func (d *Dispatcher) ghostMouse(ev *Event) bool {
	if ev.Device != DeviceMouse {
		return false
	}
	switch ev.Kind {
	case EventStart, EventMove, EventEnd, EventCancel:
	default:
		return false
	}
	if !d.now().Before(d.mouseUntil) {
		return false
	}
	_, down := d.contacts.get(ev.ContactID)
	return !down
}

func (d *Dispatcher) contactStart(ev *Event) {
	if ev.Device != DeviceMouse {
		d.mouseUntil = d.now().Add(mouseSuppressMs * time.Millisecond)
	}
	d.contacts.acquire(ev.ContactID, ev.X, ev.Y, ev.Device)

	switch n := d.contacts.count(); {
	case n == 1:
		d.beginPress(ev)
	case n == 2 && d.mode != ModePinchActive:
		d.beginPinch()
	}
}

func (d *Dispatcher) contactMove(ev *Event) {
	if !d.contacts.update(ev.ContactID, ev.X, ev.Y) {
		// Not down: a hovering cursor or pen.
		if ev.Device != DeviceTouch {
			d.hoverMove(ev)
		}
		return
	}

	if d.mode == ModePinchActive {
		d.pinchMove(ev)
		return
	}
	if d.press != nil && d.press.id == ev.ContactID {
		d.dragMove(ev)
	}
	if ev.Device != DeviceTouch {
		d.hoverMove(ev)
	}
}

func (d *Dispatcher) contactEnd(ev *Event, canceled bool) {
	if d.mode == ModePinchActive && (d.pinch.involves(ev.ContactID) || d.contacts.count() < 2) {
		d.contacts.release(ev.ContactID)
		d.endPinch()
		return
	}

	if !d.contacts.release(ev.ContactID) {
		return
	}
	if d.press == nil || d.press.id != ev.ContactID {
		return
	}
	if canceled {
		d.endPress()
		return
	}
	d.releasePress(ev)
}
