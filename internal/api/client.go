// Package api is the REST client for the bot backend: broker accounts,
// available brokers/assets, and bot deployment.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Broker is a connected broker account record.
type Broker struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
	TestMode  bool   `json:"test_mode"`
}

// DeployResult is the backend's answer to a deployment request.
type DeployResult struct {
	Identifier string `json:"identifier,omitempty"`
	Error      string `json:"error,omitempty"`
	Warning    string `json:"warning,omitempty"`
}

// BotSummary is one deployed bot as listed by the backend.
type BotSummary struct {
	Identifier string  `json:"identifier"`
	BotName    string  `json:"bot_name"`
	BotType    string  `json:"bot_type"`
	Asset      string  `json:"asset"`
	Broker     string  `json:"broker"`
	Amount     float64 `json:"amount"`
	Period     string  `json:"period"`
	Repetition int     `json:"repetition"`
	Status     string  `json:"status"`
}

// Client talks to the bot backend over HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a backend client. baseURL is taken without its
// trailing slash; token, when non-empty, is sent as a bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListBrokers returns the user's connected broker accounts.
func (c *Client) ListBrokers(ctx context.Context) ([]Broker, error) {
	var brokers []Broker
	if err := c.doJSON(ctx, http.MethodGet, "/brokers", nil, &brokers); err != nil {
		return nil, fmt.Errorf("failed to list brokers: %w", err)
	}
	return brokers, nil
}

// CreateBroker connects a new broker account.
func (c *Client) CreateBroker(ctx context.Context, b Broker) (*Broker, error) {
	var created Broker
	if err := c.doJSON(ctx, http.MethodPost, "/brokers", b, &created); err != nil {
		return nil, fmt.Errorf("failed to create broker: %w", err)
	}
	return &created, nil
}

// DeleteBroker removes a broker account by id or name.
func (c *Client) DeleteBroker(ctx context.Context, idOrName string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/brokers/"+idOrName, nil, nil); err != nil {
		return fmt.Errorf("failed to delete broker: %w", err)
	}
	return nil
}

// ListAvailableBrokers returns the brokers the platform supports.
func (c *Client) ListAvailableBrokers(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.doJSON(ctx, http.MethodGet, "/brokers/available", nil, &names); err != nil {
		return nil, fmt.Errorf("failed to list available brokers: %w", err)
	}
	return names, nil
}

// ListAvailableAssets returns the assets the platform supports.
func (c *Client) ListAvailableAssets(ctx context.Context) ([]string, error) {
	var assets []string
	if err := c.doJSON(ctx, http.MethodGet, "/assets/available", nil, &assets); err != nil {
		return nil, fmt.Errorf("failed to list available assets: %w", err)
	}
	return assets, nil
}

// ListBots returns the user's deployed bots.
func (c *Client) ListBots(ctx context.Context) ([]BotSummary, error) {
	var bots []BotSummary
	if err := c.doJSON(ctx, http.MethodGet, "/bots", nil, &bots); err != nil {
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}
	return bots, nil
}

// DeployBot submits a deployment payload. Smart bots go to their own
// endpoint. A 404 on the first attempt is retried once with a
// trailing-slash path variant; this is the only automatic retry the
// client performs.
func (c *Client) DeployBot(ctx context.Context, payload interface{}, botType string) (*DeployResult, error) {
	path := "/bots/deploy"
	if strings.EqualFold(botType, "Smart") {
		path = "/bots/smart"
	}

	var result DeployResult
	err := c.doJSON(ctx, http.MethodPost, path, payload, &result)
	if isNotFound(err) {
		err = c.doJSON(ctx, http.MethodPost, path+"/", payload, &result)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to deploy bot: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("deployment rejected: %s", result.Error)
	}
	return &result, nil
}

// statusError carries a non-2xx response status.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.code == http.StatusNotFound
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(data))}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
