// Package slider maps pointer positions on a slider track to clamped,
// stepped metric threshold values. It owns the drag lifecycle only; the
// metric collection it writes through stays the caller's.
package slider

import (
	"math"

	"github.com/botforge/botwizard/pkg/metric"
)

// Handle identifies which slider handle a drag is moving.
type Handle int

const (
	HandleSingle Handle = iota
	HandleMin
	HandleMax
)

// TrackRect is the horizontal geometry of a slider's visual track,
// captured once at drag start. It is intentionally not re-measured
// during the drag, so a window resize mid-drag maps pointer positions
// against the stale rect until the next drag begins.
type TrackRect struct {
	Left  float64
	Width float64
}

// Controller is the Idle/Dragging state machine for slider interaction.
// At most one drag is active at a time; StartDrag replaces any drag
// already in flight.
type Controller struct {
	dragging bool
	metricID string
	rect     TrackRect
	handle   Handle
}

// NewController returns a controller in the Idle state.
func NewController() *Controller {
	return &Controller{}
}

// Dragging reports whether a drag is in flight.
func (c *Controller) Dragging() bool {
	return c.dragging
}

// DragTarget returns the metric id of the active drag, or "" when Idle.
func (c *Controller) DragTarget() string {
	if !c.dragging {
		return ""
	}
	return c.metricID
}

// StartDrag begins a drag on the given handle of the given metric.
func (c *Controller) StartDrag(metricID string, rect TrackRect, handle Handle) {
	c.dragging = true
	c.metricID = metricID
	c.rect = rect
	c.handle = handle
}

// StartNearestDrag begins a drag picking the handle automatically: for a
// range-mode metric the handle nearest to the initial pointer position
// (by normalized track distance) wins; otherwise the single handle is
// used. No-op when the metric id is absent from the collection.
func (c *Controller) StartNearestDrag(col metric.Collection, metricID string, rect TrackRect, clientX float64) {
	m, ok := col.Find(metricID)
	if !ok {
		return
	}

	if !m.IsRange() {
		c.StartDrag(metricID, rect, HandleSingle)
		return
	}

	pointer := relativePos(rect, clientX)
	span := m.Max - m.Min
	if span <= 0 {
		span = 1
	}
	minPos := (m.SelectedMinValue - m.Min) / span
	maxPos := (m.SelectedMaxValue - m.Min) / span

	handle := HandleMin
	if math.Abs(pointer-maxPos) < math.Abs(pointer-minPos) {
		handle = HandleMax
	}
	c.StartDrag(metricID, rect, handle)
}

// UpdateFromPointerX maps the pointer's clientX to a value in the drag
// target's domain and applies it, returning the updated collection.
// Idle controllers return the collection unchanged.
func (c *Controller) UpdateFromPointerX(col metric.Collection, clientX float64) metric.Collection {
	if !c.dragging {
		return col
	}

	m, ok := col.Find(c.metricID)
	if !ok {
		return col
	}

	value := snap(m.Min+relativePos(c.rect, clientX)*(m.Max-m.Min), m)

	handle := c.handle
	if !m.IsRange() {
		handle = HandleSingle
	}

	return col.Update(c.metricID, func(m *metric.Metric) {
		switch handle {
		case HandleMin:
			// The min handle may never reach or cross the max handle.
			m.SelectedMinValue = clamp(value, m.Min, m.SelectedMaxValue-m.Step)
		case HandleMax:
			m.SelectedMaxValue = clamp(value, m.SelectedMinValue+m.Step, m.Max)
		default:
			m.SelectedValue = clamp(value, m.Min, m.Max)
		}
	})
}

// EndDrag returns the controller to Idle. Safe to call from a global
// pointer-release handler regardless of current state.
func (c *Controller) EndDrag() {
	c.dragging = false
	c.metricID = ""
}

func relativePos(rect TrackRect, clientX float64) float64 {
	if rect.Width <= 0 {
		return 0
	}
	return clamp((clientX-rect.Left)/rect.Width, 0, 1)
}

// snap rounds a raw value to the metric's step grid: integer steps give
// whole numbers, fractional steps are kept to two decimals.
func snap(value float64, m metric.Metric) float64 {
	if m.Step > 0 {
		value = math.Round(value/m.Step) * m.Step
	}
	if m.Step < 1 {
		return math.Round(value*100) / 100
	}
	return math.Round(value)
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
