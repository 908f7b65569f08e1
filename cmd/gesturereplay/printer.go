package main

import (
	"fmt"
	"io"
	"time"

	"github.com/phanxgames/gesture"
)

// printer is a gesture.Recorder that writes one line per gesture, stamped
// with the time since the replay started.
type printer struct {
	out   io.Writer
	start time.Time
}

func (p *printer) RecordGesture(e gesture.GestureEvent) {
	ms := float64(e.At.Sub(p.start)) / float64(time.Millisecond)
	var detail string
	switch e.Type {
	case gesture.GestureDrag:
		detail = fmt.Sprintf("dx=%.2f dy=%.2f", e.DeltaX, e.DeltaY)
		if e.Inertial {
			detail += " inertial"
		}
	case gesture.GestureClick:
		detail = fmt.Sprintf("x=%.1f y=%.1f device=%s", e.X, e.Y, e.Device)
	case gesture.GestureWheel:
		detail = fmt.Sprintf("dy=%.2f origin=%s", e.DeltaY, e.Origin)
	case gesture.GestureHover:
		detail = fmt.Sprintf("x=%.1f y=%.1f", e.X, e.Y)
	}
	fmt.Fprintf(p.out, "%8.1fms %-6s %s\n", ms, e.Type, detail)
}
