package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Armaqdev/chatbot-messenger/internal/models"
)

const defaultBaseURL = "https://graph.facebook.com/v21.0"

// Errors that indicate a caller bug or misconfiguration rather than a
// network or provider failure.
var (
	ErrMissingRecipient = errors.New("messenger: missing recipient PSID")
	ErrMissingText      = errors.New("messenger: missing message text")
	ErrMissingToken     = errors.New("messenger: MESSENGER_PAGE_ACCESS_TOKEN is not set")
)

// Client sends text messages through the Messenger Send API.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the Graph API base URL. Used in tests.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Send API client. An empty access token is accepted
// here: the credential is checked per send so a misconfigured process still
// serves webhook verification and health checks.
func NewClient(accessToken string, opts ...ClientOption) *Client {
	c := &Client{
		accessToken: accessToken,
		baseURL:     defaultBaseURL,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendText delivers text to the given PSID. Exactly one attempt; a non-2xx
// provider response fails with the status and body for diagnosis.
func (c *Client) SendText(ctx context.Context, recipientID, text string) (*models.SendResponse, error) {
	if recipientID == "" {
		return nil, ErrMissingRecipient
	}
	if text == "" {
		return nil, ErrMissingText
	}
	if c.accessToken == "" {
		return nil, ErrMissingToken
	}

	payload := models.SendRequest{
		Recipient:     models.Participant{ID: recipientID},
		Message:       models.SendMessage{Text: text},
		MessagingType: "RESPONSE",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/me/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("messenger API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result models.SendResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &result, nil
}
