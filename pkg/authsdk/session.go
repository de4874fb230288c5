package authsdk

import (
	"context"
	"io"
	"net/http"
	"sync"
)

// Session represents an authenticated session. It holds the access cookie
// and swaps it whenever the server issues a new one.
type Session struct {
	client *SDKClient

	mu          sync.RWMutex
	accessToken string

	// AutoRefresh makes gated calls refresh and retry once on 403.
	AutoRefresh bool
}

// AccessToken returns the current access token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// Refresh exchanges the current access token for a new one.
func (s *Session) Refresh(ctx context.Context) error {
	// Serialise refreshes on this session; the server keeps a single slot
	// per user so parallel refreshes would knock each other out.
	s.mu.Lock()
	defer s.mu.Unlock()

	var headers map[string]string
	if s.accessToken != "" {
		headers = map[string]string{
			"Cookie": (&http.Cookie{Name: CookieName, Value: s.accessToken}).String(),
		}
	}

	resp, err := s.client.doRequest(ctx, http.MethodGet, "/refreshToken", nil, headers)
	if err != nil {
		return err
	}

	token, err := takeCookie(resp)
	if err != nil {
		return err
	}

	s.accessToken = token
	return nil
}

// Hello calls the gated root endpoint and returns its greeting.
func (s *Session) Hello(ctx context.Context) (string, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", parseErrorResponse(resp, body)
	}
	return string(body), nil
}
