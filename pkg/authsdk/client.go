package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// CookieName is the cookie carrying the access token.
const CookieName = "noteful-auth-token"

// SDKClient is a client for the Noteful API.
// It provides access to unauthenticated operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new Noteful client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates with username and password and returns a Session
// holding the issued access cookie.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	body, err := json.Marshal(LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/login", bytes.NewReader(body), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return nil, err
	}

	token, err := takeCookie(resp)
	if err != nil {
		return nil, err
	}

	return c.NewSessionFromToken(token), nil
}

// NewSessionFromToken creates a session from an access token obtained
// elsewhere, such as a cookie persisted by a previous run.
func (c *SDKClient) NewSessionFromToken(accessToken string) *Session {
	return &Session{
		client:      c,
		accessToken: accessToken,
		AutoRefresh: true,
	}
}
