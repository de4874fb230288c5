package httpx

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/noteful/pkg/jwtx"
	"github.com/aussiebroadwan/noteful/pkg/slogx"
)

var (
	ErrMissingToken = errors.New("httpx: access token is missing")
	ErrInvalidToken = errors.New("httpx: access token rejected")
)

// Authorize verifies the access token carried in cookie name. Expired tokens
// are rejected here even though their signature is fine.
func Authorize(r *http.Request, v jwtx.Verifier, cookie string) (jwtx.Claims, error) {
	raw := CookieValue(r, cookie)
	if raw == "" {
		return jwtx.Claims{}, ErrMissingToken
	}

	claims, err := v.Verify(raw)
	if err != nil {
		return jwtx.Claims{}, errors.Join(ErrInvalidToken, err)
	}
	return claims, nil
}

// CookieAuthnMiddleware admits requests carrying a valid access token cookie
// and answers everything else with an empty 403. On success the subject and
// claims are placed in the request context.
func CookieAuthnMiddleware(v jwtx.Verifier, cookie string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			claims, err := Authorize(r, v, cookie)
			if err != nil {
				slogx.FromContext(ctx).Debug("request rejected by auth gate", "err", err)
				WriteStatus(w, http.StatusForbidden)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.WithSubject(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
