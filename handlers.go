package gesture

import "time"

// --- Handler registry ---

type handler[T any] struct {
	id uint32
	fn func(T)
}

type handlerRegistry struct {
	drag   []handler[DragContext]
	click  []handler[ClickContext]
	wheel  []handler[WheelContext]
	resize []handler[struct{}]
	hover  []handler[HoverContext]
	nextID uint32
}

// GestureType identifies a kind of emitted gesture.
type GestureType uint8

const (
	GestureDrag   GestureType = iota // incremental drag or coasting delta
	GestureClick                     // click or tap
	GestureWheel                     // wheel, pinch or double-tap zoom
	GestureResize                    // surface resized
	GestureHover                     // throttled idle pointer position
)

func (g GestureType) String() string {
	switch g {
	case GestureDrag:
		return "drag"
	case GestureClick:
		return "click"
	case GestureWheel:
		return "wheel"
	case GestureResize:
		return "resize"
	case GestureHover:
		return "hover"
	default:
		return "unknown"
	}
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id      uint32
	reg     *handlerRegistry
	gesture GestureType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.gesture {
	case GestureDrag:
		h.reg.drag = removeHandler(h.reg.drag, h.id)
	case GestureClick:
		h.reg.click = removeHandler(h.reg.click, h.id)
	case GestureWheel:
		h.reg.wheel = removeHandler(h.reg.wheel, h.id)
	case GestureResize:
		h.reg.resize = removeHandler(h.reg.resize, h.id)
	case GestureHover:
		h.reg.hover = removeHandler(h.reg.hover, h.id)
	}
}

func removeHandler[T any](s []handler[T], id uint32) []handler[T] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[T]{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) next() uint32 {
	r.nextID++
	return r.nextID
}

// --- Registration ---

// OnDrag registers a callback for drag deltas, including inertial coasting.
func (d *Dispatcher) OnDrag(fn func(DragContext)) CallbackHandle {
	id := d.handlers.next()
	d.handlers.drag = append(d.handlers.drag, handler[DragContext]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, gesture: GestureDrag}
}

// OnClick registers a callback for clicks and taps that were not consumed as
// a double-tap.
func (d *Dispatcher) OnClick(fn func(ClickContext)) CallbackHandle {
	id := d.handlers.next()
	d.handlers.click = append(d.handlers.click, handler[ClickContext]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, gesture: GestureClick}
}

// OnWheel registers a callback for the unified zoom signal.
func (d *Dispatcher) OnWheel(fn func(WheelContext)) CallbackHandle {
	id := d.handlers.next()
	d.handlers.wheel = append(d.handlers.wheel, handler[WheelContext]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, gesture: GestureWheel}
}

// OnResize registers a callback for surface resize notifications.
func (d *Dispatcher) OnResize(fn func()) CallbackHandle {
	id := d.handlers.next()
	d.handlers.resize = append(d.handlers.resize, handler[struct{}]{id: id, fn: func(struct{}) { fn() }})
	return CallbackHandle{id: id, reg: &d.handlers, gesture: GestureResize}
}

// OnHover registers a callback for throttled pointer positions while idle.
// Hover tracking is skipped entirely while no hover callback (or recorder) is
// registered.
func (d *Dispatcher) OnHover(fn func(HoverContext)) CallbackHandle {
	id := d.handlers.next()
	d.handlers.hover = append(d.handlers.hover, handler[HoverContext]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, gesture: GestureHover}
}

func (d *Dispatcher) wantsHover() bool {
	return len(d.handlers.hover) > 0 || d.recorder != nil
}

// --- Recording ---

// GestureEvent is a flat record of one emitted gesture.
type GestureEvent struct {
	Type     GestureType
	At       time.Time
	X, Y     float64 // click and hover position
	DeltaX   float64 // drag
	DeltaY   float64 // drag, or wheel delta for GestureWheel
	Inertial bool
	Origin   WheelOrigin
	Device   DeviceKind
}

// Recorder receives every gesture the dispatcher emits, after the callbacks.
type Recorder interface {
	RecordGesture(GestureEvent)
}

// SetRecorder attaches a recorder. Pass nil to detach.
func (d *Dispatcher) SetRecorder(r Recorder) {
	d.recorder = r
}

func (d *Dispatcher) record(e GestureEvent) {
	if d.recorder == nil {
		return
	}
	e.At = d.now()
	d.recorder.RecordGesture(e)
}

// --- Emission ---

func (d *Dispatcher) emitDrag(ctx DragContext) {
	if d.disposed {
		return
	}
	for _, h := range d.handlers.drag {
		h.fn(ctx)
	}
	d.record(GestureEvent{Type: GestureDrag, DeltaX: ctx.DeltaX, DeltaY: ctx.DeltaY, Inertial: ctx.Inertial})
}

func (d *Dispatcher) emitClick(ctx ClickContext) {
	if d.disposed {
		return
	}
	for _, h := range d.handlers.click {
		h.fn(ctx)
	}
	d.record(GestureEvent{Type: GestureClick, X: ctx.X, Y: ctx.Y, Device: ctx.Device})
}

func (d *Dispatcher) emitWheel(ctx WheelContext) {
	if d.disposed {
		return
	}
	for _, h := range d.handlers.wheel {
		h.fn(ctx)
	}
	d.record(GestureEvent{Type: GestureWheel, DeltaY: ctx.DeltaY, Origin: ctx.Origin})
}

func (d *Dispatcher) emitResize() {
	if d.disposed {
		return
	}
	for _, h := range d.handlers.resize {
		h.fn(struct{}{})
	}
	d.record(GestureEvent{Type: GestureResize})
}

func (d *Dispatcher) emitHover(ctx HoverContext) {
	if d.disposed {
		return
	}
	for _, h := range d.handlers.hover {
		h.fn(ctx)
	}
	d.record(GestureEvent{Type: GestureHover, X: ctx.X, Y: ctx.Y})
}
