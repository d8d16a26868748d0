package deploy

import "strings"

// quoteCurrencies ordered longest-first so that the longest suffix wins
// (USDT before USD).
var quoteCurrencies = []string{"USDT", "USDC", "BUSD", "USD", "EUR", "GBP"}

// canonicalBrokers maps upper-cased, space-stripped broker names to
// their canonical display form.
var canonicalBrokers = map[string]string{
	"BYBIT":    "Bybit",
	"BINANCE":  "Binance",
	"OKX":      "OKX",
	"COINBASE": "Coinbase",
	"KRAKEN":   "Kraken",
	"KUCOIN":   "KuCoin",
	"BITGET":   "Bitget",
}

// timeFramePeriods maps UI time-frame tokens to backend period tokens.
var timeFramePeriods = map[string]string{
	"1Min":    "MINUTE",
	"5Min":    "MINUTE",
	"15Min":   "MINUTE",
	"30Min":   "MINUTE",
	"1Hour":   "HOUR",
	"4Hour":   "HOUR",
	"1Day":    "DAY",
	"1Week":   "WEEK",
	"1Month":  "MONTH",
	"3Month":  "THREE_MONTHS",
	"6Month":  "SIX_MONTHS",
	"1Year":   "YEAR",
}

// NormalizeAsset upper-cases a symbol and inserts a slash before the
// longest matching quote currency suffix. Symbols already containing a
// slash, or with no recognized quote suffix, come back otherwise
// unchanged. Idempotent.
func NormalizeAsset(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" || strings.Contains(s, "/") {
		return s
	}

	for _, quote := range quoteCurrencies {
		if strings.HasSuffix(s, quote) && len(s) > len(quote) {
			return s[:len(s)-len(quote)] + "/" + quote
		}
	}
	return s
}

// NormalizeBroker resolves a broker name to its canonical form,
// ignoring case and whitespace. Unknown brokers are title-cased word by
// word as a fallback.
func NormalizeBroker(name string) string {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
	if canonical, ok := canonicalBrokers[key]; ok {
		return canonical
	}

	words := strings.Fields(strings.ToLower(name))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// EncodeRepetition turns a loop mode into the backend repetition count:
// Once is one run, Infinite is the zero sentinel, Custom uses the
// user-entered count.
func EncodeRepetition(loop string, amountOfTimes int) int {
	switch loop {
	case "Once":
		return 1
	case "Infinite":
		return 0
	case "Custom":
		return amountOfTimes
	default:
		return 0
	}
}

// EncodePeriod maps a UI time-frame token to the coarser backend period
// token, defaulting to DAY for anything unrecognized.
func EncodePeriod(timeFrame string) string {
	if period, ok := timeFramePeriods[timeFrame]; ok {
		return period
	}
	return "DAY"
}
