// Package github provides the GitHub adapters: the OAuth token exchange and
// issue creation through the REST API.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/runoshun/idraft/internal/domain"
)

const (
	// DefaultTimeout is the HTTP timeout used when none is configured.
	DefaultTimeout = 30 * time.Second

	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 1 << 20
)

// Ensure TokenExchanger implements domain.TokenExchanger.
var _ domain.TokenExchanger = (*TokenExchanger)(nil)

// TokenExchanger posts authorization codes to the token endpoint.
type TokenExchanger struct {
	httpClient *http.Client
	tokenURL   string
}

// NewTokenExchanger creates a TokenExchanger for tokenURL.
// A zero timeout uses DefaultTimeout.
func NewTokenExchanger(tokenURL string, timeout time.Duration) *TokenExchanger {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TokenExchanger{
		tokenURL:   tokenURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// tokenResponse is the JSON body returned by the token endpoint.
// GitHub answers 200 with error fields set when the code is rejected.
type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	Scope            string `json:"scope"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Exchange sends exactly one request and returns the access token.
func (t *TokenExchanger) Exchange(ctx context.Context, req domain.TokenRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal token request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create token request: %w", domain.ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", domain.AppName)

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: token request: %w", domain.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: read token response: %w", domain.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: token endpoint: %s (status %d)",
			domain.ErrTransport, strings.TrimSpace(string(respBody)), resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return "", fmt.Errorf("%w: decode token response: %w", domain.ErrTransport, err)
	}

	if tr.Error != "" {
		if tr.ErrorDescription != "" {
			return "", fmt.Errorf("%w: %s: %s", domain.ErrAuthFailed, tr.Error, tr.ErrorDescription)
		}
		return "", fmt.Errorf("%w: %s", domain.ErrAuthFailed, tr.Error)
	}
	if tr.AccessToken == "" {
		return "", domain.ErrMissingAccessToken
	}

	return tr.AccessToken, nil
}
