package metric

import "strings"

// Kind categorizes a metric. It is assigned once at creation and stored
// on the record, instead of being re-derived from the display name on
// every access.
type Kind string

const (
	KindTechnical   Kind = "TECHNICAL"
	KindRisk        Kind = "RISK"
	KindFearGreed   Kind = "FEAR_GREED"
	KindFundamental Kind = "FUNDAMENTAL"
	KindProprietary Kind = "PROPRIETARY"
	KindCustom      Kind = "CUSTOM"
)

// DeriveKind classifies a free-text metric name into a Kind. Called once
// when a metric is added; the result is stored on the record. Fear/greed
// is checked before the broader categories so that names like
// "Fear & Greed Index" do not fall through to CUSTOM.
func DeriveKind(name string) Kind {
	lower := strings.ToLower(name)

	switch {
	case strings.Contains(lower, "fear") || strings.Contains(lower, "greed"):
		return KindFearGreed
	case strings.Contains(lower, "technical") || strings.Contains(lower, "indicator"):
		return KindTechnical
	case strings.Contains(lower, "risk"):
		return KindRisk
	case strings.Contains(lower, "fundamental"):
		return KindFundamental
	case strings.Contains(lower, "proprietary"):
		return KindProprietary
	default:
		return KindCustom
	}
}

// Domain returns the slider value domain for a kind: minimum, maximum
// and step. Fear & greed and technical metrics use an integer 0-100
// scale; everything else uses a 0-1 ratio scale with two-decimal steps.
func (k Kind) Domain() (min, max, step float64) {
	switch k {
	case KindFearGreed, KindTechnical:
		return 0, 100, 1
	default:
		return 0, 1, 0.01
	}
}
