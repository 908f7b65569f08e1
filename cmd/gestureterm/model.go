package main

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/gesture"
	"github.com/phanxgames/gesture/teasurface"
)

const (
	logLines  = 6
	chromeRow = 4 + logLines // title, status, canvas border, log border
	minZoom   = 0.25
	maxZoom   = 8
)

// model is a pannable, zoomable marker driven entirely by gesture callbacks.
type model struct {
	surface    *teasurface.Surface
	dispatcher *gesture.Dispatcher

	width, height int
	panX, panY    float64
	zoom          float64
	hoverX        float64
	hoverY        float64
	hovering      bool
	clicks        int
	log           []string
}

func newModel(cfg gesture.Config) *model {
	m := &model{surface: teasurface.New(), zoom: 1}
	m.dispatcher = gesture.New(m.surface, cfg)
	m.bind()
	return m
}

func (m *model) bind() {
	d := m.dispatcher
	d.OnDrag(func(ctx gesture.DragContext) {
		m.panX += ctx.DeltaX
		m.panY += ctx.DeltaY
		if !ctx.Inertial {
			m.hovering = false
		}
	})
	d.OnClick(func(ctx gesture.ClickContext) {
		m.clicks++
		m.logf("click at %.0f,%.0f (%s)", ctx.X, ctx.Y, ctx.Device)
	})
	d.OnWheel(func(ctx gesture.WheelContext) {
		m.zoom = math.Min(maxZoom, math.Max(minZoom, m.zoom*math.Pow(2, -ctx.DeltaY/400)))
		m.logf("wheel %+.0f from %s, zoom %.2fx", ctx.DeltaY, ctx.Origin, m.zoom)
	})
	d.OnResize(func() {
		m.logf("resized to %dx%d", m.width, m.height)
	})
	d.OnHover(func(ctx gesture.HoverContext) {
		m.hoverX, m.hoverY = ctx.X, ctx.Y
		m.hovering = true
	})
}

func (m *model) logf(format string, args ...any) {
	m.log = append(m.log, fmt.Sprintf(format, args...))
	if len(m.log) > logLines {
		m.log = m.log[len(m.log)-logLines:]
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.dispatcher.Dispose()
			return m, tea.Quit
		case "r":
			m.panX, m.panY, m.zoom = 0, 0, 1
			m.dispatcher.CancelAll()
			m.logf("reset")
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, m.surface.Update(msg)
}

func (m *model) View() string {
	if m.width == 0 {
		return ""
	}
	cw := max(m.width-2, 1)
	ch := max(m.height-chromeRow, 1)

	title := titleStyle.Render("gesture playground") +
		mutedStyle.Render("  drag to pan · wheel to zoom · r reset · q quit")
	status := fmt.Sprintf("pan %+.0f,%+.0f  zoom %.2fx  mode %s  clicks %d",
		m.panX, m.panY, m.zoom, m.dispatcher.Mode(), m.clicks)
	if m.dispatcher.Coasting() {
		status += "  coasting"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		status,
		canvasStyle.Render(m.canvas(cw, ch)),
		logStyle.Width(cw).Render(m.logText()),
	)
}

// canvas draws a zoom-sized square centred on the panned origin. Mouse
// coordinates include the title, status and border rows, which offsets the
// hover marker by the same amount.
func (m *model) canvas(w, h int) string {
	cx := float64(w)/2 + m.panX
	cy := float64(h)/2 + m.panY
	r := 2 * m.zoom
	hx, hy := int(m.hoverX)-1, int(m.hoverY)-3

	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) - cx) / 2 // cells are about twice as tall as wide
			dy := float64(y) - cy
			switch {
			case m.hovering && x == hx && y == hy:
				b.WriteString(hoverStyle.Render("+"))
			case math.Abs(dx) <= r && math.Abs(dy) <= r:
				b.WriteString(markerStyle.Render("█"))
			default:
				b.WriteByte(' ')
			}
		}
		if y < h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *model) logText() string {
	lines := make([]string, logLines)
	copy(lines[logLines-len(m.log):], m.log)
	return strings.Join(lines, "\n")
}
