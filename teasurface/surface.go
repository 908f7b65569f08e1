// Package teasurface adapts Bubble Tea mouse, window and focus messages into
// gesture events, so terminal programs get drags, clicks, wheel zoom and
// coasting from the same dispatcher as graphical ones.
//
// Coordinates are terminal cells. Enable mouse motion reporting
// (tea.WithMouseAllMotion) for hover, and tea.WithReportFocus for blur.
package teasurface

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/gesture"
)

// DefaultWheelStep is the wheel delta for one terminal scroll notch.
const DefaultWheelStep = 100

// FrameMsg drives the surface's Loop. The surface schedules it itself while
// coasting frames or timeouts are pending.
type FrameMsg struct {
	At time.Time
}

// Surface is a gesture.Surface fed from a Bubble Tea Update loop.
type Surface struct {
	*gesture.Loop
	gesture.Hub

	// FrameInterval is the tick used while deferred work is pending.
	FrameInterval time.Duration
	// WheelStep is the wheel delta published per scroll notch.
	WheelStep float64

	clock         func() time.Time
	mouseDown     bool
	ticking       bool
	width, height int
}

// New creates a Surface on the wall clock.
func New() *Surface {
	return newSurface(time.Now)
}

func newSurface(clock func() time.Time) *Surface {
	return &Surface{
		Loop:          gesture.NewLoop(clock()),
		FrameInterval: gesture.DefaultFrameInterval,
		WheelStep:     DefaultWheelStep,
		clock:         clock,
	}
}

// Update feeds one Bubble Tea message to the surface. Call it from the model's
// Update with every message and batch the returned command.
func (s *Surface) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FrameMsg:
		s.ticking = false
		s.Advance(msg.At)
	case tea.MouseMsg:
		s.Advance(s.clock())
		s.mouse(msg)
	case tea.WindowSizeMsg:
		s.Advance(s.clock())
		if s.width != 0 && (msg.Width != s.width || msg.Height != s.height) {
			s.Publish(gesture.Event{Kind: gesture.EventResize, Native: msg})
		}
		s.width, s.height = msg.Width, msg.Height
	case tea.BlurMsg:
		s.Advance(s.clock())
		s.mouseDown = false
		s.Publish(gesture.Event{Kind: gesture.EventBlur, Native: msg})
	default:
		return nil
	}
	return s.schedule()
}

// schedule starts a frame tick if deferred work is waiting and no tick is in
// flight.
func (s *Surface) schedule() tea.Cmd {
	if s.ticking {
		return nil
	}
	if frames, timers := s.Pending(); frames == 0 && timers == 0 {
		return nil
	}
	s.ticking = true
	return tea.Tick(s.FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg{At: t}
	})
}

func (s *Surface) mouse(msg tea.MouseMsg) {
	ev := gesture.Event{
		ContactID: 0,
		Device:    gesture.DeviceMouse,
		X:         float64(msg.X),
		Y:         float64(msg.Y),
		Native:    tea.MouseEvent(msg),
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			s.Publish(gesture.Event{Kind: gesture.EventWheel, DeltaY: -s.WheelStep, Native: ev.Native})
		case tea.MouseButtonWheelDown:
			s.Publish(gesture.Event{Kind: gesture.EventWheel, DeltaY: s.WheelStep, Native: ev.Native})
		case tea.MouseButtonLeft:
			if s.mouseDown {
				return
			}
			s.mouseDown = true
			ev.Kind = gesture.EventStart
			s.Publish(ev)
		}
	case tea.MouseActionRelease:
		// Some terminals report releases without a button.
		if !s.mouseDown || (msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone) {
			return
		}
		s.mouseDown = false
		ev.Kind = gesture.EventEnd
		s.Publish(ev)
	case tea.MouseActionMotion:
		ev.Kind = gesture.EventMove
		s.Publish(ev)
	}
}
