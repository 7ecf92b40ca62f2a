package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// SessionResponse is the backend's answer to a successful code exchange.
type SessionResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type exchangeRequest struct {
	Code string `json:"code"`
}

// ExchangeClient trades an authorization code for a backend-issued
// session. The backend talks to the provider; this client only ever
// sees the opaque code and the resulting session payload.
type ExchangeClient struct {
	httpClient *http.Client
	backendURL string
}

// ExchangeClientOption modifies the ExchangeClient instance.
type ExchangeClientOption func(*ExchangeClient)

// WithHTTPClient overrides the transport (primarily for testing).
func WithHTTPClient(client *http.Client) ExchangeClientOption {
	return func(c *ExchangeClient) {
		c.httpClient = client
	}
}

func NewExchangeClient(backendURL string, options ...ExchangeClientOption) *ExchangeClient {
	c := &ExchangeClient{
		httpClient: http.DefaultClient,
		backendURL: strings.TrimSuffix(backendURL, "/"),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Exchange POSTs the code to the backend and decodes the session
// payload. Failures map onto NetworkErr, AuthServerErr and DecodeErr;
// nothing is retried. Cancelling ctx abandons the request.
func (c *ExchangeClient) Exchange(ctx context.Context, code string) (*SessionResponse, error) {
	body, err := json.Marshal(exchangeRequest{Code: code})
	if err != nil {
		return nil, errors.Wrap(err, "marshal exchange request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.backendURL+"/auth/google", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create exchange request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(NetworkErr, "send exchange request: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(NetworkErr, "read exchange response: %v", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Wrapf(AuthServerErr, "authentication failed with status %d", resp.StatusCode)
	}

	var sessionResp SessionResponse
	if err := json.Unmarshal(respBody, &sessionResp); err != nil {
		return nil, errors.Wrapf(DecodeErr, "parse exchange response: %v", err)
	}
	if sessionResp.Token == "" {
		return nil, errors.Wrap(DecodeErr, "exchange response missing token")
	}

	return &sessionResp, nil
}
