package metric

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeriveKind_Classification tests name-to-kind classification
func TestDeriveKind_Classification(t *testing.T) {
	assert.Equal(t, KindFearGreed, DeriveKind("Fear & Greed Index"))
	assert.Equal(t, KindTechnical, DeriveKind("Technical Indicator"))
	assert.Equal(t, KindRisk, DeriveKind("Risk Metric"))
	assert.Equal(t, KindFundamental, DeriveKind("Fundamental Score"))
	assert.Equal(t, KindProprietary, DeriveKind("Proprietary Signal"))
	assert.Equal(t, KindCustom, DeriveKind("My Own Thing"))
}

// TestKindDomain_SliderRanges tests the slider domains fixed per kind
func TestKindDomain_SliderRanges(t *testing.T) {
	min, max, step := KindFearGreed.Domain()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 100.0, max)
	assert.Equal(t, 1.0, step)

	min, max, step = KindRisk.Domain()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 1.0, max)
	assert.Equal(t, 0.01, step)
}

// TestAdd_Defaults tests that a freshly added metric is enabled and expanded
func TestAdd_Defaults(t *testing.T) {
	col, err := NewCollection().Add("Fear & Greed Index")
	require.NoError(t, err)
	require.Equal(t, 1, col.Len())

	m := col.Metrics[0]
	assert.NotEmpty(t, m.ID)
	assert.True(t, m.Enabled)
	assert.True(t, col.IsExpanded(m.ID))
	assert.Equal(t, KindFearGreed, m.Kind)
	assert.Equal(t, 100.0, m.Max)
}

// TestAdd_DuplicateKindRejected tests that a second metric of the same kind is rejected
func TestAdd_DuplicateKindRejected(t *testing.T) {
	col, err := NewCollection().Add("Risk Metric")
	require.NoError(t, err)

	after, err := col.Add("Another Risk Gauge")
	assert.ErrorIs(t, err, ErrDuplicateKind)
	assert.Equal(t, 1, after.Len())
}

// TestAdd_CapNeverExceeded tests that no sequence of adds exceeds the cap
func TestAdd_CapNeverExceeded(t *testing.T) {
	col := NewCollection()
	var err error
	for i := 0; i < 25; i++ {
		col, err = col.Add(fmt.Sprintf("Custom Signal %d", i))
		if err != nil {
			assert.ErrorIs(t, err, ErrDuplicateKind)
		}
	}
	assert.LessOrEqual(t, col.Len(), MaxMetrics)

	seen := map[Kind]bool{}
	for _, m := range col.Metrics {
		assert.False(t, seen[m.Kind], "duplicate kind %s", m.Kind)
		seen[m.Kind] = true
	}
}

// TestRemove_AbsentIDIsNoop tests removing an id that does not exist
func TestRemove_AbsentIDIsNoop(t *testing.T) {
	col, _ := NewCollection().Add("Risk Metric")
	after := col.Remove("no-such-id")
	assert.Equal(t, col.Len(), after.Len())
}

// TestToggleEnabled_Idempotence tests that toggling twice restores the original state
func TestToggleEnabled_Idempotence(t *testing.T) {
	col, _ := NewCollection().Add("Risk Metric")
	id := col.Metrics[0].ID

	once := col.ToggleEnabled(id)
	twice := once.ToggleEnabled(id)

	assert.False(t, once.Metrics[0].Enabled)
	assert.Equal(t, col.Metrics[0].Enabled, twice.Metrics[0].Enabled)
}

// TestToggleExpanded_Idempotence tests that toggling expansion twice restores the original state
func TestToggleExpanded_Idempotence(t *testing.T) {
	col, _ := NewCollection().Add("Risk Metric")
	id := col.Metrics[0].ID

	once := col.ToggleExpanded(id)
	twice := once.ToggleExpanded(id)

	assert.False(t, once.IsExpanded(id))
	assert.Equal(t, col.IsExpanded(id), twice.IsExpanded(id))
}

// TestToggleGroupExpand_TriState tests the batch expand/collapse behavior
func TestToggleGroupExpand_TriState(t *testing.T) {
	col, _ := NewCollection().Add("Risk Metric")
	id := col.Metrics[0].ID

	// Freshly added metric is expanded, so the group toggle collapses it.
	collapsed := col.ToggleGroupExpand(KindRisk)
	assert.False(t, collapsed.IsExpanded(id))

	// Not all expanded anymore, so the next toggle expands.
	expanded := collapsed.ToggleGroupExpand(KindRisk)
	assert.True(t, expanded.IsExpanded(id))
}

// TestUpdate_ShallowMerge tests field updates through the mutator
func TestUpdate_ShallowMerge(t *testing.T) {
	col, _ := NewCollection().Add("Fear & Greed Index")
	id := col.Metrics[0].ID

	after := col.Update(id, func(m *Metric) {
		m.AmountPerBuy = 250
		m.Cond = CondInBetween
	})

	assert.Equal(t, 250.0, after.Metrics[0].AmountPerBuy)
	assert.Equal(t, CondInBetween, after.Metrics[0].Cond)
	// Original untouched.
	assert.Equal(t, 0.0, col.Metrics[0].AmountPerBuy)
}

// TestPruneUnsupported_RemovesRiskForUnsupportedAsset tests the add-then-prune scenario
func TestPruneUnsupported_RemovesRiskForUnsupportedAsset(t *testing.T) {
	col, err := NewCollection().Add("Risk Metric")
	require.NoError(t, err)
	require.Equal(t, 1, col.Len())

	kept := col.PruneUnsupported("BTCUSDT")
	assert.Equal(t, 1, kept.Len())

	pruned := col.PruneUnsupported("AAPL")
	assert.Equal(t, 0, pruned.Len())
}

// TestPruneUnsupported_KeepsNonRiskMetrics tests that only RISK metrics are pruned
func TestPruneUnsupported_KeepsNonRiskMetrics(t *testing.T) {
	col, _ := NewCollection().Add("Risk Metric")
	col, _ = col.Add("Fear & Greed Index")

	pruned := col.PruneUnsupported("AAPL")
	require.Equal(t, 1, pruned.Len())
	assert.Equal(t, KindFearGreed, pruned.Metrics[0].Kind)
}

// TestReset_EmptiesCollection tests that reset drops everything
func TestReset_EmptiesCollection(t *testing.T) {
	col, _ := NewCollection().Add("Risk Metric")
	assert.Equal(t, 0, col.Reset().Len())
}

// TestAddAction_PerSideCap tests the 5 BUY + 5 SELL limit on technical sub-rules
func TestAddAction_PerSideCap(t *testing.T) {
	m := New("Technical Indicator")

	var err error
	for i := 0; i < MaxActionsPerSide; i++ {
		m, err = m.AddAction(Action{TradeAction: ActionBuy, Condition: CondLessThan, Value: 30})
		require.NoError(t, err)
		m, err = m.AddAction(Action{TradeAction: ActionSell, Condition: CondGreaterThan, Value: 70})
		require.NoError(t, err)
	}

	_, err = m.AddAction(Action{TradeAction: ActionBuy})
	assert.ErrorIs(t, err, ErrActionCapReached)
	_, err = m.AddAction(Action{TradeAction: ActionSell})
	assert.ErrorIs(t, err, ErrActionCapReached)
	assert.Len(t, m.Actions, 2*MaxActionsPerSide)
}
