// Package deploy normalizes accumulated wizard state into the payload
// the backend deployment endpoint accepts.
package deploy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/botforge/botwizard/internal/wizard"
	"github.com/botforge/botwizard/pkg/metric"
)

// ErrInsufficientBroker means no broker account could be resolved at
// deploy time; the deployment is aborted and the user has to reconnect.
var ErrInsufficientBroker = errors.New("no connected broker available")

// SmartMetric is one serialized metric condition in a Smart bot payload.
type SmartMetric struct {
	Type         string   `json:"type"`
	Condition    string   `json:"condition"`
	AmountPerBuy float64  `json:"amount_per_buy"`
	Threshold    *float64 `json:"threshold,omitempty"`
	MinThreshold *float64 `json:"min_threshold,omitempty"`
	MaxThreshold *float64 `json:"max_threshold,omitempty"`
}

// BalanceWarning is a non-fatal deploy-time notice: the payload still
// goes out, tagged with the warning.
type BalanceWarning struct {
	Reason       string  `json:"reason"`
	AmountPerBuy float64 `json:"amount_per_buy"`
	Balance      float64 `json:"balance"`
}

// Payload is the normalized bot configuration sent to the backend.
type Payload struct {
	BotName      string        `json:"bot_name"`
	BotType      string        `json:"bot_type"`
	Asset        string        `json:"asset"`
	Broker       string        `json:"broker"`
	BrokerID     string        `json:"broker_id"`
	Amount       float64       `json:"amount"`
	Period       string        `json:"period"`
	Repetition   int           `json:"repetition"`
	SmartMetrics []SmartMetric `json:"smart_metrics,omitempty"`

	// Warning travels with the payload for the caller to surface; it is
	// not part of the wire format.
	Warning *BalanceWarning `json:"-"`
}

// Build normalizes the wizard forms and metric collection into a
// deployment payload. brokerID must already be resolved from the
// connected-broker list; balance is the last verified account balance
// (zero or negative when verification never succeeded).
func Build(basic wizard.BasicInfoForm, schedule wizard.ScheduleForm, metrics metric.Collection, botType wizard.BotType, brokerID string, balance float64) (*Payload, error) {
	if strings.TrimSpace(brokerID) == "" {
		return nil, ErrInsufficientBroker
	}

	if errs := wizard.ValidateBasicInfo(basic); errs.HasErrors() {
		return nil, fmt.Errorf("basic info: %w", errs)
	}
	if errs := wizard.ValidateSchedule(schedule); errs.HasErrors() {
		return nil, fmt.Errorf("schedule: %w", errs)
	}

	p := &Payload{
		BotName:    basic.BotName,
		BotType:    string(botType),
		Asset:      NormalizeAsset(schedule.Asset),
		Broker:     NormalizeBroker(basic.Broker),
		BrokerID:   brokerID,
		Amount:     schedule.Amount,
		Period:     EncodePeriod(schedule.TimeFrame),
		Repetition: EncodeRepetition(string(schedule.Loop), schedule.AmountOfTimes),
	}

	if botType == wizard.BotTypeSmart {
		p.SmartMetrics = serializeSmartMetrics(metrics)
	}

	p.Warning = balanceWarning(schedule.Amount, balance)
	return p, nil
}

// serializeSmartMetrics converts each enabled metric into its wire
// entry: threshold for the single conditions, a min/max pair for
// in-between.
func serializeSmartMetrics(metrics metric.Collection) []SmartMetric {
	out := make([]SmartMetric, 0, metrics.Len())
	for _, m := range metrics.Enabled() {
		entry := SmartMetric{
			Type:         smartMetricType(m),
			Condition:    string(m.Cond),
			AmountPerBuy: m.AmountPerBuy,
		}

		if m.IsRange() {
			min, max := m.SelectedMinValue, m.SelectedMaxValue
			entry.MinThreshold = &min
			entry.MaxThreshold = &max
		} else {
			threshold := m.SelectedValue
			entry.Threshold = &threshold
		}

		out = append(out, entry)
	}
	return out
}

func smartMetricType(m metric.Metric) string {
	if strings.Contains(m.Name, "Fear") {
		return "FEAR_AND_GREED"
	}
	return "RISK_METRIC"
}

// balanceWarning tags the payload when the per-buy amount exceeds the
// verified balance, or when no balance could be verified at all. Either
// way deployment proceeds.
func balanceWarning(amount, balance float64) *BalanceWarning {
	switch {
	case balance <= 0:
		return &BalanceWarning{
			Reason:       "account balance could not be verified",
			AmountPerBuy: amount,
			Balance:      balance,
		}
	case amount > balance:
		return &BalanceWarning{
			Reason:       "per-buy amount exceeds account balance",
			AmountPerBuy: amount,
			Balance:      balance,
		}
	default:
		return nil
	}
}
