package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medicore/hms-console/pkg/config"
	"github.com/medicore/hms-console/pkg/interfaces"
	"github.com/medicore/hms-console/pkg/logger"
	"github.com/medicore/hms-console/pkg/types"
)

// Client is the single wrapper around the records API. It attaches
// the bearer token to every request when one is held, and classifies
// every response into the console's error taxonomy so no screen has
// to special-case status codes.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  interfaces.TokenSource
	logger  *logger.Logger
}

// New creates an API client against the configured base URL
func New(cfg *config.APIConfig, tokens interfaces.TokenSource, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		tokens: tokens,
		logger: log,
	}
}

// Request issues an API call and returns the parsed 2xx body.
// Classification priority: transport failure, 401 (which also forces
// logout through the token source), 403, 400, 404, 5xx, any other
// non-2xx, then malformed 2xx bodies.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	requestID := uuid.New().String()
	start := time.Now()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, types.NewUnexpectedError(fmt.Sprintf("failed to encode request body: %v", err), 0)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, types.NewUnexpectedError(fmt.Sprintf("failed to build request: %v", err), 0)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	// The token is read fresh on every request so a concurrent 401
	// that cleared it is seen immediately
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(requestID, method, path, "network", 0, start)
		return nil, types.NewNetworkError("no response from server", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(requestID, method, path, "network", resp.StatusCode, start)
		return nil, types.NewNetworkError("failed to read response", err)
	}

	result, cerr := c.classify(resp.StatusCode, respBody)
	outcome := "success"
	if cerr != nil {
		outcome = string(types.ErrorTypeOf(cerr))
	}
	c.observe(requestID, method, path, outcome, resp.StatusCode, start)
	if cerr != nil {
		return nil, cerr
	}
	return result, nil
}

// classify maps a status code and body onto the error taxonomy
func (c *Client) classify(status int, body []byte) (json.RawMessage, *types.ConsoleError) {
	if status >= 200 && status < 300 {
		if len(bytes.TrimSpace(body)) == 0 {
			// Some write endpoints reply 2xx with an empty body
			return json.RawMessage("null"), nil
		}
		if !json.Valid(body) {
			return nil, types.NewUnexpectedError(string(body), status)
		}
		return json.RawMessage(body), nil
	}

	message := errorMessage(body)

	switch {
	case status == http.StatusUnauthorized:
		// Forced logout, regardless of which screen issued the call
		c.tokens.Invalidate()
		return nil, types.NewUnauthorizedError(message)
	case status == http.StatusForbidden:
		return nil, types.NewForbiddenError(message)
	case status == http.StatusBadRequest:
		return nil, types.NewValidationError(message)
	case status == http.StatusNotFound:
		return nil, types.NewNotFoundError(message)
	case status >= 500:
		return nil, types.NewServerError(message, status)
	default:
		return nil, types.NewUnexpectedError(message, status)
	}
}

func (c *Client) observe(requestID, method, path, outcome string, status int, start time.Time) {
	duration := time.Since(start)
	recordRequest(method, outcome, duration)
	c.logger.APIRequest(requestID, method, path, outcome, status, duration.Milliseconds())
}

// errorMessage mines the standard {message} error body, falling back
// to the raw text
func errorMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "request failed"
	}
	return text
}
