package broker

import (
	"testing"

	bybit_api "github.com/bybit-exchange/bybit.go.api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseTotalEquity_Success tests extraction from a well-formed wallet response
func TestParseTotalEquity_Success(t *testing.T) {
	resp := &bybit_api.ServerResponse{
		RetCode: 0,
		Result: map[string]interface{}{
			"list": []map[string]interface{}{
				{"totalEquity": "1234.56"},
			},
		},
	}

	equity, err := parseTotalEquity(resp)
	require.NoError(t, err)
	assert.Equal(t, 1234.56, equity)
}

// TestParseTotalEquity_APIError tests that a non-zero ret code fails
func TestParseTotalEquity_APIError(t *testing.T) {
	resp := &bybit_api.ServerResponse{RetCode: 10003, RetMsg: "Invalid API key"}

	_, err := parseTotalEquity(resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
}

// TestParseTotalEquity_EmptyList tests the no-account-data case
func TestParseTotalEquity_EmptyList(t *testing.T) {
	resp := &bybit_api.ServerResponse{
		RetCode: 0,
		Result:  map[string]interface{}{"list": []map[string]interface{}{}},
	}

	_, err := parseTotalEquity(resp)
	assert.Error(t, err)
}

// TestParseTotalEquity_WrongType tests a response that is not a ServerResponse
func TestParseTotalEquity_WrongType(t *testing.T) {
	_, err := parseTotalEquity("nope")
	assert.Error(t, err)
}
