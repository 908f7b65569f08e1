package gesture

import "fmt"

// EventKind identifies a kind of platform input event.
type EventKind uint8

const (
	EventStart  EventKind = iota // a contact went down
	EventMove                    // a contact (or a hovering pointer) moved
	EventEnd                     // a contact was released
	EventCancel                  // the platform cancelled a contact
	EventWheel                   // wheel or trackpad scroll, DeltaY set
	EventResize                  // the host surface changed size
	EventBlur                    // the surface lost focus or was hidden
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventMove:
		return "move"
	case EventEnd:
		return "end"
	case EventCancel:
		return "cancel"
	case EventWheel:
		return "wheel"
	case EventResize:
		return "resize"
	case EventBlur:
		return "blur"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// DeviceKind identifies the hardware behind a contact.
type DeviceKind uint8

const (
	DeviceMouse DeviceKind = iota // mouse or trackpad cursor
	DeviceTouch                   // finger on a touch screen
	DevicePen                     // stylus
)

func (d DeviceKind) String() string {
	switch d {
	case DeviceMouse:
		return "mouse"
	case DeviceTouch:
		return "touch"
	case DevicePen:
		return "pen"
	default:
		return fmt.Sprintf("unknown(%d)", d)
	}
}

// Event is the single input type a Surface delivers. Which fields are
// meaningful depends on Kind: contact events use ContactID, X, Y and Device;
// EventWheel uses DeltaY (positive scrolls down / zooms out); EventResize and
// EventBlur carry no payload.
type Event struct {
	Kind      EventKind
	ContactID int
	X, Y      float64
	Device    DeviceKind
	DeltaY    float64
	// Native is the platform's own event value, if any. It is never inspected.
	Native any
}

// Mode is the dispatcher's interaction mode. Exactly one is active.
type Mode uint8

const (
	ModeIdle        Mode = iota // no drag or pinch (a press may be pending)
	ModeDragging                // one primary contact moved past the dead zone
	ModePinchActive             // two designated contacts are pinching
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	case ModePinchActive:
		return "pinch"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// WheelOrigin tells a wheel handler where a zoom signal came from.
type WheelOrigin uint8

const (
	WheelFromDevice    WheelOrigin = iota // a real wheel or trackpad scroll
	WheelFromPinch                        // two-contact pinch
	WheelFromDoubleTap                    // touch double-tap zoom-in
)

func (o WheelOrigin) String() string {
	switch o {
	case WheelFromDevice:
		return "device"
	case WheelFromPinch:
		return "pinch"
	case WheelFromDoubleTap:
		return "double_tap"
	default:
		return fmt.Sprintf("unknown(%d)", o)
	}
}

// DragContext carries an incremental drag delta. Source is nil for deltas
// synthesized by inertial coasting.
type DragContext struct {
	DeltaX, DeltaY float64
	Inertial       bool
	Source         *Event
}

// ClickContext carries the position of a completed click or tap.
type ClickContext struct {
	X, Y   float64
	Device DeviceKind
	Source *Event
}

// WheelContext is the unified zoom signal. Source is nil for double-tap zoom.
type WheelContext struct {
	DeltaY float64
	Origin WheelOrigin
	Source *Event
}

// HoverContext carries a throttled pointer position while idle.
type HoverContext struct {
	X, Y   float64
	Source *Event
}
