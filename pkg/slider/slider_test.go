package slider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botforge/botwizard/pkg/metric"
)

func fearGreedCollection(t *testing.T) (metric.Collection, string) {
	t.Helper()
	col, err := metric.NewCollection().Add("Fear & Greed Index")
	require.NoError(t, err)
	return col, col.Metrics[0].ID
}

// track maps pointer x 0..100 directly onto value 0..100
var track = TrackRect{Left: 0, Width: 100}

// TestUpdateFromPointerX_SingleHandle tests the basic pointer-to-value mapping
func TestUpdateFromPointerX_SingleHandle(t *testing.T) {
	col, id := fearGreedCollection(t)

	c := NewController()
	c.StartDrag(id, track, HandleSingle)
	col = c.UpdateFromPointerX(col, 42)

	m, _ := col.Find(id)
	assert.Equal(t, 42.0, m.SelectedValue)
}

// TestUpdateFromPointerX_ClampsToTrack tests that off-track pointers clamp to the domain
func TestUpdateFromPointerX_ClampsToTrack(t *testing.T) {
	col, id := fearGreedCollection(t)

	c := NewController()
	c.StartDrag(id, track, HandleSingle)

	m, _ := c.UpdateFromPointerX(col, -500).Find(id)
	assert.Equal(t, 0.0, m.SelectedValue)

	m, _ = c.UpdateFromPointerX(col, 9999).Find(id)
	assert.Equal(t, 100.0, m.SelectedValue)
}

// TestUpdateFromPointerX_FractionalStepRounding tests two-decimal rounding on 0-1 domains
func TestUpdateFromPointerX_FractionalStepRounding(t *testing.T) {
	col, err := metric.NewCollection().Add("Risk Metric")
	require.NoError(t, err)
	id := col.Metrics[0].ID

	c := NewController()
	c.StartDrag(id, track, HandleSingle)
	col = c.UpdateFromPointerX(col, 33.333)

	m, _ := col.Find(id)
	assert.Equal(t, 0.33, m.SelectedValue)
}

// TestUpdateFromPointerX_MinHandleClamp tests the drag clamp scenario: the min
// handle stops at max-step even when the pointer goes further
func TestUpdateFromPointerX_MinHandleClamp(t *testing.T) {
	col, id := fearGreedCollection(t)
	col = col.Update(id, func(m *metric.Metric) {
		m.Cond = metric.CondInBetween
		m.SelectedMinValue = 10
		m.SelectedMaxValue = 96
	})

	c := NewController()
	c.StartDrag(id, track, HandleMin)
	col = c.UpdateFromPointerX(col, 95)

	m, _ := col.Find(id)
	assert.Equal(t, 95.0, m.SelectedMinValue)

	// Pointer past the max handle: clamped to max-step.
	col = c.UpdateFromPointerX(col, 99)
	m, _ = col.Find(id)
	assert.Equal(t, 95.0, m.SelectedMinValue)
	assert.LessOrEqual(t, m.SelectedMinValue, m.SelectedMaxValue-m.Step)
}

// TestUpdateFromPointerX_MaxHandleClamp tests the symmetric clamp on the max handle
func TestUpdateFromPointerX_MaxHandleClamp(t *testing.T) {
	col, id := fearGreedCollection(t)
	col = col.Update(id, func(m *metric.Metric) {
		m.Cond = metric.CondInBetween
		m.SelectedMinValue = 40
		m.SelectedMaxValue = 90
	})

	c := NewController()
	c.StartDrag(id, track, HandleMax)
	col = c.UpdateFromPointerX(col, 5)

	m, _ := col.Find(id)
	assert.Equal(t, 41.0, m.SelectedMaxValue)
	assert.GreaterOrEqual(t, m.SelectedMaxValue, m.SelectedMinValue+m.Step)
}

// TestUpdateFromPointerX_RangeOrderingInvariant tests min <= max-step over a drag sequence
func TestUpdateFromPointerX_RangeOrderingInvariant(t *testing.T) {
	col, id := fearGreedCollection(t)
	col = col.Update(id, func(m *metric.Metric) { m.Cond = metric.CondInBetween })

	c := NewController()
	for _, x := range []float64{80, 99, 120, 3, 50} {
		c.StartDrag(id, track, HandleMin)
		col = c.UpdateFromPointerX(col, x)
		c.EndDrag()

		c.StartDrag(id, track, HandleMax)
		col = c.UpdateFromPointerX(col, 100-x)
		c.EndDrag()

		m, _ := col.Find(id)
		assert.LessOrEqual(t, m.SelectedMinValue, m.SelectedMaxValue-m.Step)
	}
}

// TestStartNearestDrag_PicksClosestHandle tests automatic handle selection in range mode
func TestStartNearestDrag_PicksClosestHandle(t *testing.T) {
	col, id := fearGreedCollection(t)
	col = col.Update(id, func(m *metric.Metric) {
		m.Cond = metric.CondInBetween
		m.SelectedMinValue = 20
		m.SelectedMaxValue = 80
	})

	c := NewController()
	c.StartNearestDrag(col, id, track, 85)
	col2 := c.UpdateFromPointerX(col, 85)
	m, _ := col2.Find(id)
	assert.Equal(t, 85.0, m.SelectedMaxValue)
	assert.Equal(t, 20.0, m.SelectedMinValue)

	c.EndDrag()
	c.StartNearestDrag(col, id, track, 25)
	col3 := c.UpdateFromPointerX(col, 25)
	m, _ = col3.Find(id)
	assert.Equal(t, 25.0, m.SelectedMinValue)
}

// TestStartDrag_ReplacesActiveDrag tests that a new drag displaces the previous one
func TestStartDrag_ReplacesActiveDrag(t *testing.T) {
	col, id := fearGreedCollection(t)
	col, err := col.Add("Risk Metric")
	require.NoError(t, err)
	riskID := col.Metrics[1].ID

	c := NewController()
	c.StartDrag(id, track, HandleSingle)
	c.StartDrag(riskID, track, HandleSingle)

	assert.Equal(t, riskID, c.DragTarget())

	col = c.UpdateFromPointerX(col, 50)
	fg, _ := col.Find(id)
	risk, _ := col.Find(riskID)
	assert.Equal(t, 50.0, fg.SelectedValue) // untouched default midpoint
	assert.Equal(t, 0.5, risk.SelectedValue)
}

// TestEndDrag_ReturnsToIdle tests that updates after release are ignored
func TestEndDrag_ReturnsToIdle(t *testing.T) {
	col, id := fearGreedCollection(t)

	c := NewController()
	c.StartDrag(id, track, HandleSingle)
	col = c.UpdateFromPointerX(col, 70)
	c.EndDrag()

	assert.False(t, c.Dragging())
	after := c.UpdateFromPointerX(col, 10)
	m, _ := after.Find(id)
	assert.Equal(t, 70.0, m.SelectedValue)
}
