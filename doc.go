// Package gesture turns raw pointer input (mouse, touch, pen) into a small set
// of semantic gestures: drag, click/tap, wheel-zoom, pinch-zoom,
// double-tap-zoom and hover, with inertial coasting after a drag release.
//
// The package never renders and never hit-tests. It only classifies input
// and reports how much something was dragged or zoomed; what that means is up
// to the caller.
//
// # Quick start
//
// A [Dispatcher] attaches to a [Surface], which delivers [Event] values and
// supplies time, frames and timeouts. Platform surfaces live in sub-packages
// (ebitensurface for [Ebitengine], teasurface for [Bubble Tea]); tests and
// replays use [VirtualSurface].
//
//	surface := ebitensurface.New()
//	d := gesture.New(surface, gesture.DefaultConfig())
//	d.OnDrag(func(ctx gesture.DragContext) {
//		camera.Rotate(ctx.DeltaX, ctx.DeltaY)
//	})
//	d.OnWheel(func(ctx gesture.WheelContext) {
//		camera.Zoom(ctx.DeltaY)
//	})
//	defer d.Dispose()
//
// Call the surface's Update from your game loop; callbacks run synchronously
// inside it.
//
// # Gestures
//
// A single contact is a click candidate until it moves more than
// [Config.DragDeadZone]; after that every move reports an incremental delta
// and the deltas sum to the full displacement. On release a fast drag keeps
// coasting with exponentially decaying speed ([Config.InertiaDecay]) until it
// drops below [Config.InertiaMinSpeed]. Any new press or pinch stops it.
//
// Two contacts form a pinch. The change in their separation is reported
// through OnWheel as a log-scaled delta, so spreading the fingers zooms in by
// the same proportion regardless of the current zoom. Taps right after a pinch
// are swallowed.
//
// Touch taps go through double-tap detection: a second tap within
// [Config.DoubleTapMs] and 12 units of the first becomes a zoom-in wheel
// event instead of a click.
//
// Hover reports the cursor position while nothing is being dragged or
// pinched, throttled to one event per [Config.HoverThrottleMs] with the last
// position always delivered.
//
// # Threading
//
// Everything runs on the goroutine that drives the surface. There are no
// locks and no background goroutines; deferred work (coasting, trailing
// hover) is scheduled on the surface's [Loop].
//
// [Ebitengine]: https://ebitengine.org
// [Bubble Tea]: https://github.com/charmbracelet/bubbletea
package gesture
