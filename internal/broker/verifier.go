// Package broker verifies exchange API credentials by fetching the
// account's total equity. A successful round-trip both proves the keys
// work and gives the wizard a balance to sanity-check buy amounts
// against.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	bybit_api "github.com/bybit-exchange/bybit.go.api"
)

// Verifier checks broker credentials and reports the account's total
// balance in USD terms.
type Verifier interface {
	VerifyCredentials(ctx context.Context, apiKey, secretKey string, testMode bool) (float64, error)
}

// BybitVerifier verifies credentials against the Bybit unified trading
// account wallet endpoint.
type BybitVerifier struct{}

// NewBybitVerifier creates a Bybit-backed credential verifier.
func NewBybitVerifier() *BybitVerifier {
	return &BybitVerifier{}
}

// VerifyCredentials calls the wallet-balance endpoint with the given
// keys and returns the account's total equity in USD. Any API error,
// including bad keys, fails the verification.
func (v *BybitVerifier) VerifyCredentials(ctx context.Context, apiKey, secretKey string, testMode bool) (float64, error) {
	baseURL := bybit_api.MAINNET
	if testMode {
		baseURL = bybit_api.TESTNET
	}

	client := bybit_api.NewBybitHttpClient(apiKey, secretKey, bybit_api.WithBaseURL(baseURL))

	params := map[string]interface{}{"accountType": "UNIFIED"}
	result, err := client.NewUtaBybitServiceWithParams(params).GetAccountWallet(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to verify credentials: %w", err)
	}

	equity, err := parseTotalEquity(result)
	if err != nil {
		return 0, fmt.Errorf("failed to parse wallet response: %w", err)
	}
	return equity, nil
}

// parseTotalEquity extracts totalEquity from the wallet response.
func parseTotalEquity(response interface{}) (float64, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return 0, fmt.Errorf("invalid response type")
	}

	if serverResp.RetCode != 0 {
		return 0, fmt.Errorf("API error: %s (code: %d)", serverResp.RetMsg, serverResp.RetCode)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal result: %w", err)
	}

	var walletResult struct {
		List []struct {
			TotalEquity string `json:"totalEquity"`
		} `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &walletResult); err != nil {
		return 0, fmt.Errorf("failed to unmarshal wallet result: %w", err)
	}

	if len(walletResult.List) == 0 {
		return 0, fmt.Errorf("no account data found")
	}

	equity, err := strconv.ParseFloat(walletResult.List[0].TotalEquity, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid total equity %q: %w", walletResult.List[0].TotalEquity, err)
	}
	return equity, nil
}
