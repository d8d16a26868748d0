package wizard

import (
	"strings"

	"github.com/botforge/botwizard/pkg/metric"
)

// ModifyRecord is an externally supplied bot used to pre-populate the
// wizard for an update instead of a create. Read once from the draft
// store at wizard entry.
type ModifyRecord struct {
	BotID         string          `json:"bot_id"`
	BotName       string          `json:"bot_name"`
	Broker        string          `json:"broker"`
	BotType       BotType         `json:"bot_type"`
	Asset         string          `json:"asset"`
	Amount        float64         `json:"amount"`
	TimeFrame     string          `json:"time_frame"`
	Loop          LoopMode        `json:"loop"`
	AmountOfTimes int             `json:"amount_of_times"`
	Metrics       []metric.Metric `json:"metrics,omitempty"`
}

// Suggestion is an AI-suggested configuration: asset, amount, and a
// free-text frequency that is keyword-matched onto a time frame.
type Suggestion struct {
	Asset     string  `json:"asset"`
	Amount    float64 `json:"amount"`
	Frequency string  `json:"frequency"`
}

// HydrateFromModify pre-fills every form from an existing bot, enters
// modify mode, and jumps to the confirmation step.
func (w *Wizard) HydrateFromModify(rec ModifyRecord) {
	w.Basic = BasicInfoForm{
		BotName: rec.BotName,
		Broker:  rec.Broker,
		BotType: rec.BotType,
	}
	w.Schedule = ScheduleForm{
		Asset:         rec.Asset,
		Amount:        rec.Amount,
		TimeFrame:     rec.TimeFrame,
		Loop:          rec.Loop,
		AmountOfTimes: rec.AmountOfTimes,
	}

	col := metric.NewCollection()
	for _, m := range rec.Metrics {
		col.Metrics = append(col.Metrics, m)
	}
	w.Metrics = col

	w.modifyMode = true
	w.modifyBotID = rec.BotID
	w.connected = true
	w.mainStep = StepConfirm
	w.subStep = SubStepConnected
}

// HydrateFromSuggestion pre-fills asset, amount and time frame from an
// AI suggestion and jumps to the confirmation step. Fields the
// suggestion leaves empty keep their defaults.
func (w *Wizard) HydrateFromSuggestion(s Suggestion) {
	if s.Asset != "" {
		w.SetAsset(s.Asset)
	}
	if s.Amount > 0 {
		w.Schedule.Amount = s.Amount
	}
	w.Schedule.TimeFrame = timeFrameFromText(s.Frequency)
	w.mainStep = StepConfirm
}

// timeFrameFromText maps free-text frequency wording onto a UI time
// frame token. Unrecognized wording falls back to daily.
func timeFrameFromText(text string) string {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "minute") || strings.Contains(lower, "min"):
		return "1Min"
	case strings.Contains(lower, "hour"):
		return "1Hour"
	case strings.Contains(lower, "week"):
		return "1Week"
	case strings.Contains(lower, "month"):
		return "1Month"
	case strings.Contains(lower, "year") || strings.Contains(lower, "annual"):
		return "1Year"
	default:
		return "1Day"
	}
}
