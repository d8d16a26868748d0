package wizard

// BotType selects the active metric pool and the step-2 variant.
type BotType string

const (
	BotTypeBasic   BotType = "Basic"
	BotTypeSmart   BotType = "Smart"
	BotTypeAdvance BotType = "Advance"
)

// LoopMode encodes how often the bot repeats its buy schedule.
type LoopMode string

const (
	LoopOnce     LoopMode = "Once"
	LoopInfinite LoopMode = "Infinite"
	LoopCustom   LoopMode = "Custom"
)

// BasicInfoForm is the step-1 identity form.
type BasicInfoForm struct {
	BotName string
	Broker  string
	BotType BotType
}

// ScheduleForm is the step-2 asset and schedule form.
type ScheduleForm struct {
	Asset         string
	Amount        float64
	TimeFrame     string
	Loop          LoopMode
	AmountOfTimes int
}

// CredentialsForm holds the broker API credentials entered in the
// API-connect sub-step.
type CredentialsForm struct {
	APIKey    string
	SecretKey string
	TestMode  bool
}

func defaultBasicInfo() BasicInfoForm {
	return BasicInfoForm{BotType: BotTypeBasic}
}

func defaultSchedule() ScheduleForm {
	return ScheduleForm{
		Asset:     "BTC/USDT",
		TimeFrame: "1Day",
		Loop:      LoopInfinite,
	}
}
