// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the climate-QA Gateway.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNetwork
	ErrTypeTimeout
	ErrTypeHTTP
	ErrTypeInvalidResponse
)

// NetworkStatus is the sentinel status carried by transport-level failures.
// It is distinct from any valid HTTP status code.
const NetworkStatus = -1

// ClientError represents an error from the Gateway client.
// HTTP failures carry the response status and raw body; transport failures
// carry NetworkStatus instead.
type ClientError struct {
	Type       ErrorType
	StatusCode int
	Body       string
	Message    string
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Sentinel errors for easy checking.
var (
	ErrNetwork = &ClientError{Type: ErrTypeNetwork, StatusCode: NetworkStatus, Message: "gateway unreachable"}
	ErrTimeout = &ClientError{Type: ErrTypeTimeout, StatusCode: NetworkStatus, Message: "request timed out"}
)

// IsNetwork checks if an error is a transport-level failure.
func IsNetwork(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNetwork
	}
	return errors.Is(err, ErrNetwork)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsHTTP checks if an error is a non-2xx Gateway response. When it is, the
// returned status code is valid.
func IsHTTP(err error) (int, bool) {
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr.Type == ErrTypeHTTP {
		return clientErr.StatusCode, true
	}
	return 0, false
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Gateway client.
type ClientConfig struct {
	// BaseURL is the Gateway base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout for list/history/rename requests (default: 15s)
	Timeout time.Duration

	// QueryTimeout for answer generation, which can be slow (default: 120s)
	QueryTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:      "http://127.0.0.1:8000",
		Timeout:      15 * time.Second,
		QueryTimeout: 120 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Gateway API.
// It is safe for concurrent use.
//
// Example:
//
//	client := api.NewClient()
//	chat, err := client.CreateChat(ctx)
//	if err != nil {
//	    log.Fatal("gateway not available:", err)
//	}
//	resp, err := client.SendMessage(ctx, chat.ID, "What is climate change?")
type Client struct {
	config      *ClientConfig
	httpClient  *http.Client
	queryClient *http.Client
}

// NewClient creates a new Gateway client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new Gateway client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	if config.QueryTimeout == 0 {
		config.QueryTimeout = 120 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		queryClient: &http.Client{
			Timeout: config.QueryTimeout,
		},
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// CreateChat registers a new chat with the Gateway and returns its ID.
func (c *Client) CreateChat(ctx context.Context) (*CreateChatResponse, error) {
	var result CreateChatResponse
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/api/v1/chats", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendMessage posts a question to a chat and returns the complete answer.
// The Gateway answers synchronously; there is no streaming on the wire.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) (*QueryResponse, error) {
	body := QueryRequest{Text: text}

	var result QueryResponse
	path := "/api/v1/chats/" + url.PathEscape(chatID) + "/query"
	if err := c.do(ctx, c.queryClient, http.MethodPost, path, &body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListConversations retrieves the saved conversation summaries.
func (c *Client) ListConversations(ctx context.Context) ([]ConversationSummary, error) {
	var result []ConversationSummary
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/api/v1/conversations", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetMessageHistory retrieves the full message history for a chat.
func (c *Client) GetMessageHistory(ctx context.Context, chatID string) ([]HistoryMessage, error) {
	var result []HistoryMessage
	path := "/api/v1/chats/" + url.PathEscape(chatID) + "/messages"
	if err := c.do(ctx, c.httpClient, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// RenameChat changes a chat's display name. The new name travels as a query
// parameter, matching the Gateway's changename endpoint.
func (c *Client) RenameChat(ctx context.Context, chatID, chatName string) (*RenameResponse, error) {
	var result RenameResponse
	path := "/api/v1/chats/" + url.PathEscape(chatID) + "/changename?chat_name=" + url.QueryEscape(chatName)
	if err := c.do(ctx, c.httpClient, http.MethodPut, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// REQUEST EXECUTION
// =============================================================================

// do performs a JSON request/response round trip against the Gateway.
// Non-2xx responses become ErrTypeHTTP errors carrying status and body;
// transport failures become the network/timeout sentinels.
func (c *Client) do(ctx context.Context, httpClient *http.Client, method, path string, reqBody, out any) error {
	var bodyReader io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, StatusCode: NetworkStatus, Message: "failed to marshal request", Cause: err}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, bodyReader)
	if err != nil {
		return &ClientError{Type: ErrTypeNetwork, StatusCode: NetworkStatus, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeNetwork, StatusCode: NetworkStatus, Message: "gateway unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Carry the raw body so callers can log what the Gateway said
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return &ClientError{
			Type:       ErrTypeHTTP,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
			Message:    "gateway request failed: " + resp.Status,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, StatusCode: resp.StatusCode, Message: "failed to decode response", Cause: err}
	}

	return nil
}
