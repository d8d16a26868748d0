package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validWizard() *Wizard {
	w := New()
	w.Basic = BasicInfoForm{BotName: "my-dca", Broker: "Bybit", BotType: BotTypeSmart}
	w.Schedule = ScheduleForm{Asset: "BTC/USDT", Amount: 100, TimeFrame: "1Day", Loop: LoopInfinite}
	return w
}

// TestNextMainStep_EmptyBotNameBlocks tests the wizard gating scenario:
// an empty bot name keeps the wizard on step 1 and reports the field
func TestNextMainStep_EmptyBotNameBlocks(t *testing.T) {
	w := validWizard()
	w.Basic.BotName = ""

	err := w.NextMainStep()
	require.Error(t, err)
	assert.Equal(t, StepBasicSetup, w.MainStep())

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "botName")
}

// TestNextMainStep_CustomLoopNeedsAmountOfTimes tests the conditional schedule rule
func TestNextMainStep_CustomLoopNeedsAmountOfTimes(t *testing.T) {
	w := validWizard()
	require.NoError(t, w.NextMainStep())

	w.Schedule.Loop = LoopCustom
	w.Schedule.AmountOfTimes = 0
	err := w.NextMainStep()
	require.Error(t, err)
	assert.Equal(t, StepSchedule, w.MainStep())

	w.Schedule.AmountOfTimes = 7
	require.NoError(t, w.NextMainStep())
	assert.Equal(t, StepConfirm, w.MainStep())
}

// TestNextSubStep_ConnectRequiresVerificationOrSkip tests the API-connect gate
func TestNextSubStep_ConnectRequiresVerificationOrSkip(t *testing.T) {
	w := validWizard()
	require.NoError(t, w.NextSubStep())
	assert.Equal(t, SubStepAPIConnect, w.SubStep())

	assert.ErrorIs(t, w.NextSubStep(), ErrNotConnected)

	w.SkipVerification()
	assert.Equal(t, SubStepConnected, w.SubStep())
	assert.True(t, w.Connected())
	assert.Equal(t, 0.0, w.Balance())
}

// TestApplyVerification_SuccessAdvances tests a successful round-trip
func TestApplyVerification_SuccessAdvances(t *testing.T) {
	w := validWizard()
	require.NoError(t, w.NextSubStep())

	gen := w.BeginVerification()
	assert.True(t, w.ApplyVerification(gen, 1250.0, nil))
	assert.True(t, w.Connected())
	assert.Equal(t, 1250.0, w.Balance())
	assert.Equal(t, SubStepConnected, w.SubStep())
}

// TestApplyVerification_StaleGenerationDiscarded tests that a response from a
// superseded attempt cannot mutate the wizard
func TestApplyVerification_StaleGenerationDiscarded(t *testing.T) {
	w := validWizard()
	require.NoError(t, w.NextSubStep())

	stale := w.BeginVerification()
	w.BeginVerification() // user retried; first attempt is now stale

	assert.False(t, w.ApplyVerification(stale, 9999.0, nil))
	assert.False(t, w.Connected())
	assert.Equal(t, SubStepAPIConnect, w.SubStep())
}

// TestApplyVerification_ResetInvalidatesInFlight tests that reset discards
// responses that land after the user navigated away
func TestApplyVerification_ResetInvalidatesInFlight(t *testing.T) {
	w := validWizard()
	require.NoError(t, w.NextSubStep())

	gen := w.BeginVerification()
	w.Reset()

	assert.False(t, w.ApplyVerification(gen, 500.0, nil))
	assert.False(t, w.Connected())
}

// TestJumpToStep_ForwardGatedBackwardFree tests jump semantics
func TestJumpToStep_ForwardGatedBackwardFree(t *testing.T) {
	w := New()

	// Forward jump with invalid forms is rejected.
	require.Error(t, w.JumpToStep(StepConfirm))
	assert.Equal(t, StepBasicSetup, w.MainStep())

	w = validWizard()
	require.NoError(t, w.JumpToStep(StepConfirm))
	assert.Equal(t, StepConfirm, w.MainStep())

	// Backward is unconditional, even with forms since blanked.
	w.Basic.BotName = ""
	require.NoError(t, w.JumpToStep(StepBasicSetup))
	assert.Equal(t, StepBasicSetup, w.MainStep())

	assert.ErrorIs(t, w.JumpToStep(4), ErrInvalidStep)
}

// TestSetAsset_PrunesUnsupportedRiskMetrics tests the asset-change reaction
func TestSetAsset_PrunesUnsupportedRiskMetrics(t *testing.T) {
	w := validWizard()
	var err error
	w.Metrics, err = w.Metrics.Add("Risk Metric")
	require.NoError(t, err)

	w.SetAsset("ETHUSDT")
	assert.Equal(t, 1, w.Metrics.Len())

	w.SetAsset("AAPL")
	assert.Equal(t, 0, w.Metrics.Len())
	assert.Equal(t, "AAPL", w.Schedule.Asset)
}

// TestReset_RestoresDefaultsAndExitsModifyMode tests the full reset contract
func TestReset_RestoresDefaultsAndExitsModifyMode(t *testing.T) {
	w := New()
	w.HydrateFromModify(ModifyRecord{
		BotID:   "bot-42",
		BotName: "old bot",
		Broker:  "OKX",
		BotType: BotTypeAdvance,
		Asset:   "ETH/USDT",
		Amount:  50,
	})
	require.True(t, w.ModifyMode())
	require.Equal(t, StepConfirm, w.MainStep())

	w.Reset()
	assert.False(t, w.ModifyMode())
	assert.Empty(t, w.ModifyBotID())
	assert.Equal(t, StepBasicSetup, w.MainStep())
	assert.Equal(t, SubStepBasicInfo, w.SubStep())
	assert.Equal(t, defaultBasicInfo(), w.Basic)
	assert.Equal(t, defaultSchedule(), w.Schedule)
	assert.Equal(t, 0, w.Metrics.Len())
}

// TestHydrateFromModify_PrefillsAndJumps tests modify-mode hydration
func TestHydrateFromModify_PrefillsAndJumps(t *testing.T) {
	w := New()
	w.HydrateFromModify(ModifyRecord{
		BotID:     "bot-7",
		BotName:   "eth dca",
		Broker:    "Bybit",
		BotType:   BotTypeSmart,
		Asset:     "ETH/USDT",
		Amount:    75,
		TimeFrame: "1Week",
		Loop:      LoopCustom, AmountOfTimes: 12,
	})

	assert.True(t, w.ModifyMode())
	assert.Equal(t, "bot-7", w.ModifyBotID())
	assert.Equal(t, StepConfirm, w.MainStep())
	assert.Equal(t, "eth dca", w.Basic.BotName)
	assert.Equal(t, 12, w.Schedule.AmountOfTimes)
}

// TestHydrateFromSuggestion_KeywordMatchesFrequency tests suggestion prefill
func TestHydrateFromSuggestion_KeywordMatchesFrequency(t *testing.T) {
	w := New()
	w.HydrateFromSuggestion(Suggestion{Asset: "BTCUSDT", Amount: 20, Frequency: "buy every week"})

	assert.Equal(t, StepConfirm, w.MainStep())
	assert.Equal(t, "BTCUSDT", w.Schedule.Asset)
	assert.Equal(t, 20.0, w.Schedule.Amount)
	assert.Equal(t, "1Week", w.Schedule.TimeFrame)

	w2 := New()
	w2.HydrateFromSuggestion(Suggestion{Frequency: "whenever it dips"})
	assert.Equal(t, "1Day", w2.Schedule.TimeFrame)
}
