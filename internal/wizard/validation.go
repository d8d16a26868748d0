package wizard

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationErrors maps field names to the message shown next to the
// offending input. An empty map means the form passed.
type ValidationErrors map[string]string

// Error joins the per-field messages in field order.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return strings.Join(parts, "; ")
}

// HasErrors reports whether any field failed.
func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

// ValidateBasicInfo checks the step-1 identity form.
func ValidateBasicInfo(f BasicInfoForm) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(f.BotName) == "" {
		errs["botName"] = "bot name is required"
	}
	if strings.TrimSpace(f.Broker) == "" {
		errs["broker"] = "broker is required"
	}
	if f.BotType == "" {
		errs["botType"] = "bot type is required"
	}

	return errs
}

// ValidateSchedule checks the step-2 asset and schedule form, including
// the conditional rule: a Custom loop needs a positive repetition count.
func ValidateSchedule(f ScheduleForm) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(f.Asset) == "" {
		errs["asset"] = "asset is required"
	}
	if f.Amount <= 0 {
		errs["amount"] = fmt.Sprintf("amount must be positive, got: %.2f", f.Amount)
	}
	if strings.TrimSpace(f.TimeFrame) == "" {
		errs["timeFrame"] = "time frame is required"
	}
	if f.Loop == "" {
		errs["loop"] = "loop mode is required"
	}
	if f.Loop == LoopCustom && f.AmountOfTimes <= 0 {
		errs["amountOfTimes"] = fmt.Sprintf("amount of times must be positive for a Custom loop, got: %d", f.AmountOfTimes)
	}

	return errs
}

// ValidateCredentials checks the API-connect form.
func ValidateCredentials(f CredentialsForm) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(f.APIKey) == "" {
		errs["apiKey"] = "API key is required"
	}
	if strings.TrimSpace(f.SecretKey) == "" {
		errs["secretKey"] = "secret key is required"
	}

	return errs
}
