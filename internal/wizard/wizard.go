// Package wizard implements the multi-step bot configuration state
// machine: three main steps, the connect sub-steps inside step one,
// per-step validation gating, and hydration from a modify record or an
// AI-suggested configuration. All mutation goes through the Wizard's
// methods; rendering and transport stay outside.
package wizard

import (
	"errors"

	"github.com/botforge/botwizard/pkg/metric"
)

// Main step numbers.
const (
	StepBasicSetup = 1
	StepSchedule   = 2
	StepConfirm    = 3
)

// Sub-steps inside StepBasicSetup.
const (
	SubStepBasicInfo  = 1
	SubStepAPIConnect = 2
	SubStepConnected  = 3
)

var (
	// ErrNotConnected gates the API-connect sub-step: advancing needs a
	// verified credential round-trip or an explicit skip.
	ErrNotConnected = errors.New("broker credentials not verified")

	// ErrInvalidStep is returned for jump targets outside 1..3.
	ErrInvalidStep = errors.New("step out of range")
)

// Wizard tracks the full configuration flow for one session. Created
// fresh per session, optionally hydrated from a modify record or a
// suggestion, and discarded after deployment or reset.
type Wizard struct {
	mainStep int
	subStep  int

	Basic       BasicInfoForm
	Schedule    ScheduleForm
	Credentials CredentialsForm
	Metrics     metric.Collection

	modifyMode  bool
	modifyBotID string

	connected bool
	balance   float64

	// verifyGen invalidates in-flight credential verifications: results
	// carrying an older generation are discarded, so a response landing
	// after the user navigated away cannot mutate state.
	verifyGen uint64
}

// New returns a wizard at step 1 / sub-step 1 with default forms.
func New() *Wizard {
	return &Wizard{
		mainStep: StepBasicSetup,
		subStep:  SubStepBasicInfo,
		Basic:    defaultBasicInfo(),
		Schedule: defaultSchedule(),
		Metrics:  metric.NewCollection(),
	}
}

// MainStep returns the current top-level step (1-3).
func (w *Wizard) MainStep() int { return w.mainStep }

// SubStep returns the current sub-step inside step 1.
func (w *Wizard) SubStep() int { return w.subStep }

// ModifyMode reports whether deployment will update an existing bot.
func (w *Wizard) ModifyMode() bool { return w.modifyMode }

// ModifyBotID returns the bot being modified, or "" when creating.
func (w *Wizard) ModifyBotID() string { return w.modifyBotID }

// Connected reports whether credentials were verified or skipped.
func (w *Wizard) Connected() bool { return w.connected }

// Balance returns the last verified account balance, zero if none.
func (w *Wizard) Balance() float64 { return w.balance }

// NextSubStep advances within step 1. The move from basic info to API
// connect is gated on the basic-info form; the move from API connect to
// connected requires a verification round-trip or an explicit skip.
func (w *Wizard) NextSubStep() error {
	if w.mainStep != StepBasicSetup {
		return nil
	}

	switch w.subStep {
	case SubStepBasicInfo:
		if errs := ValidateBasicInfo(w.Basic); errs.HasErrors() {
			return errs
		}
		w.subStep = SubStepAPIConnect
	case SubStepAPIConnect:
		if !w.connected {
			return ErrNotConnected
		}
		w.subStep = SubStepConnected
	}
	return nil
}

// PrevSubStep moves back within step 1, never below sub-step 1.
func (w *Wizard) PrevSubStep() {
	if w.mainStep == StepBasicSetup && w.subStep > SubStepBasicInfo {
		w.subStep--
	}
}

// BeginVerification marks a new credential verification attempt and
// returns its generation token. The caller hands the token back via
// ApplyVerification so stale responses can be told apart.
func (w *Wizard) BeginVerification() uint64 {
	w.verifyGen++
	return w.verifyGen
}

// ApplyVerification records the outcome of a verification round-trip.
// Results from an outdated generation are discarded and the method
// reports false. On success the wizard advances past the API-connect
// sub-step if it is still there.
func (w *Wizard) ApplyVerification(gen uint64, balance float64, err error) bool {
	if gen != w.verifyGen {
		return false
	}
	if err != nil {
		return true
	}

	w.connected = true
	w.balance = balance
	if w.mainStep == StepBasicSetup && w.subStep == SubStepAPIConnect {
		w.subStep = SubStepConnected
	}
	return true
}

// SkipVerification marks the broker as connected without a round-trip.
// The balance stays zero, which downstream deploy logic treats as
// unverified and tags with a warning.
func (w *Wizard) SkipVerification() {
	w.connected = true
	if w.mainStep == StepBasicSetup && w.subStep == SubStepAPIConnect {
		w.subStep = SubStepConnected
	}
}

// NextMainStep advances the top-level step, gated on the current step's
// form being valid.
func (w *Wizard) NextMainStep() error {
	switch w.mainStep {
	case StepBasicSetup:
		if errs := ValidateBasicInfo(w.Basic); errs.HasErrors() {
			return errs
		}
		w.mainStep = StepSchedule
	case StepSchedule:
		if errs := ValidateSchedule(w.Schedule); errs.HasErrors() {
			return errs
		}
		w.mainStep = StepConfirm
	}
	return nil
}

// PrevMainStep moves back one top-level step, never below step 1.
func (w *Wizard) PrevMainStep() {
	if w.mainStep > StepBasicSetup {
		w.mainStep--
	}
}

// JumpToStep moves directly to step n. Backward jumps are always
// allowed; forward jumps require every intermediate step to validate.
func (w *Wizard) JumpToStep(n int) error {
	if n < StepBasicSetup || n > StepConfirm {
		return ErrInvalidStep
	}
	if n <= w.mainStep {
		w.mainStep = n
		return nil
	}

	if n > StepBasicSetup {
		if errs := ValidateBasicInfo(w.Basic); errs.HasErrors() {
			return errs
		}
	}
	if n > StepSchedule {
		if errs := ValidateSchedule(w.Schedule); errs.HasErrors() {
			return errs
		}
	}

	w.mainStep = n
	return nil
}

// SetAsset updates the watched asset and prunes metrics the new asset
// does not support.
func (w *Wizard) SetAsset(symbol string) {
	w.Schedule.Asset = symbol
	w.Metrics = w.Metrics.PruneUnsupported(symbol)
}

// Reset restores both forms to defaults, empties the metric collection,
// returns to step 1 / sub-step 1, and exits modify mode. In-flight
// verifications are invalidated.
func (w *Wizard) Reset() {
	w.verifyGen++
	w.mainStep = StepBasicSetup
	w.subStep = SubStepBasicInfo
	w.Basic = defaultBasicInfo()
	w.Schedule = defaultSchedule()
	w.Credentials = CredentialsForm{}
	w.Metrics = w.Metrics.Reset()
	w.modifyMode = false
	w.modifyBotID = ""
	w.connected = false
	w.balance = 0
}
