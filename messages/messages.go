// Package messages is the thin client for the shared message list. It
// has no protocol content of its own; it simply rides the session token
// issued by the auth flow.
package messages

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Message is one entry in the shared message list. ID, CreatedAt and
// UserID are assigned by the backend and absent on a freshly composed
// message.
type Message struct {
	ID        *int64  `json:"id,omitempty"`
	Content   string  `json:"content"`
	Author    string  `json:"author"`
	CreatedAt *string `json:"created_at,omitempty"`
	UserID    *int64  `json:"user_id,omitempty"`
}

// Client reads and posts messages on behalf of an authenticated
// session. The token is passed per call so the client itself holds no
// credential.
type Client struct {
	httpClient *http.Client
	backendURL string
}

// ClientOption modifies the Client instance.
type ClientOption func(*Client)

// WithHTTPClient overrides the transport (primarily for testing).
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

func NewClient(backendURL string, options ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		backendURL: strings.TrimSuffix(backendURL, "/"),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// List fetches the message list, newest first.
func (c *Client) List(ctx context.Context, token string) ([]Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.backendURL+"/messages", nil)
	if err != nil {
		return nil, errors.Wrap(err, "create list request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var msgs []Message
	if err := c.do(req, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Post submits msg and returns the stored message as the backend
// recorded it (with id and timestamp filled in).
func (c *Client) Post(ctx context.Context, token string, msg Message) (*Message, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "marshal message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.backendURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create post request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	var stored Message
	if err := c.do(req, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("backend returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "parse response")
	}
	return nil
}
