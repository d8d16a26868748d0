package metric

import (
	"fmt"

	"github.com/google/uuid"
)

// Condition selects how a metric's current reading is compared against
// its configured threshold(s).
type Condition string

const (
	CondLessThan    Condition = "Less than"
	CondGreaterThan Condition = "Greater than"
	CondEqualTo     Condition = "Equal to"
	CondInBetween   Condition = "In between"
)

// TradeAction is the order side a technical rule triggers.
type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
)

// Per-metric limit on technical sub-rules, per order side.
const MaxActionsPerSide = 5

// Action is a single technical sub-rule with its own trigger condition
// and trade management settings.
type Action struct {
	Condition     Condition   `json:"condition"`
	Value         float64     `json:"value"`
	TradeAction   TradeAction `json:"trade_action"`
	AmountPerBuy  float64     `json:"amount_per_buy,omitempty"`
	TakeProfitPct float64     `json:"take_profit_pct,omitempty"`
	StopLossPct   float64     `json:"stop_loss_pct,omitempty"`
}

// TechRule is the legacy per-rule record kept for bots configured before
// the Action list existed.
type TechRule struct {
	Indicator string    `json:"indicator"`
	Period    int       `json:"period"`
	Condition Condition `json:"condition"`
	Value     float64   `json:"value"`
}

// Metric is one user-added condition gating a bot's buy/sell behavior.
// It is pure domain data; presentation flags such as expansion live in
// the Collection's view state, keyed by ID.
type Metric struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Kind    Kind      `json:"kind"`
	Enabled bool      `json:"enabled"`
	Cond    Condition `json:"condition"`

	// Threshold values. SelectedValue is used for the single-threshold
	// conditions; the min/max pair only when Cond == CondInBetween.
	SelectedValue    float64 `json:"selected_value"`
	SelectedMinValue float64 `json:"selected_min_value"`
	SelectedMaxValue float64 `json:"selected_max_value"`

	// Slider domain, fixed at creation from the Kind.
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`

	AmountPerBuy float64 `json:"amount_per_buy"`

	// Technical-only fields.
	IndicatorName   string      `json:"indicator_name,omitempty"`
	IndicatorPeriod int         `json:"indicator_period,omitempty"`
	TradeSide       TradeAction `json:"trade_side,omitempty"`
	Actions         []Action    `json:"actions,omitempty"`
	PercentPerBuy   float64     `json:"percent_per_buy,omitempty"`
	SellPercent     float64     `json:"sell_percent,omitempty"`
	SellLevel       float64     `json:"sell_level,omitempty"`
	TechRules       []TechRule  `json:"tech_rules,omitempty"`
}

// New creates a metric with kind-appropriate defaults. The kind is
// derived from the display name once, here, and stored on the record.
func New(name string) Metric {
	kind := DeriveKind(name)
	min, max, step := kind.Domain()

	m := Metric{
		ID:               uuid.NewString(),
		Name:             name,
		Kind:             kind,
		Enabled:          true,
		Cond:             CondGreaterThan,
		SelectedValue:    midpoint(min, max, step),
		SelectedMinValue: min,
		SelectedMaxValue: max,
		Min:              min,
		Max:              max,
		Step:             step,
	}

	if kind == KindTechnical {
		m.IndicatorName = "RSI"
		m.IndicatorPeriod = 14
		m.TradeSide = ActionBuy
	}

	return m
}

// AddAction appends a technical sub-rule, enforcing the per-side cap.
func (m Metric) AddAction(a Action) (Metric, error) {
	buys, sells := 0, 0
	for _, existing := range m.Actions {
		if existing.TradeAction == ActionSell {
			sells++
		} else {
			buys++
		}
	}

	if a.TradeAction == ActionSell && sells >= MaxActionsPerSide {
		return m, fmt.Errorf("metric %q: %w", m.Name, ErrActionCapReached)
	}
	if a.TradeAction != ActionSell && buys >= MaxActionsPerSide {
		return m, fmt.Errorf("metric %q: %w", m.Name, ErrActionCapReached)
	}

	m.Actions = append(append([]Action(nil), m.Actions...), a)
	return m, nil
}

// IsRange reports whether the metric compares against a min/max pair.
func (m Metric) IsRange() bool {
	return m.Cond == CondInBetween
}

func midpoint(min, max, step float64) float64 {
	mid := min + (max-min)/2
	if step >= 1 {
		return float64(int64(mid))
	}
	return mid
}
