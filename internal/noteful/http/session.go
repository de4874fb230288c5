package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/noteful/internal/noteful/service"
	"github.com/aussiebroadwan/noteful/pkg/authsdk"
	"github.com/aussiebroadwan/noteful/pkg/httpx"
	"github.com/aussiebroadwan/noteful/pkg/slogx"
)

const (
	msgMissingInformation = "Missing Information"
	msgUserDoesntExist    = "User doesnt exist"
	msgTokenMissing       = "Access token is missing"

	maxBodyBytes = 1 << 20
)

// LoginHandler serves POST /login
type LoginHandler struct {
	SessionService *service.SessionService
	Production     bool
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Checks the credentials and starts a new session. The access token is returned in an HttpOnly cookie
//	@Description	and the body is empty. Any previous session for the user stops being refreshable.
//	@Tags			Session
//	@Accept			json
//	@Param			credentials	body		authsdk.LoginRequest	true	"username and password"
//	@Success		200			"empty body, Set-Cookie: noteful-auth-token"
//	@Failure		403			{object}	authsdk.MessageResponse	"User doesnt exist (empty body on a wrong password)"
//	@Failure		422			{object}	authsdk.MessageResponse	"Missing Information"
//	@Failure		500			{object}	httpx.ErrorResponse
//	@Header			200			{string}	Set-Cookie	"noteful-auth-token=<jwt>; Path=/; HttpOnly; Secure"
//	@Router			/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// An unreadable body is treated like one without credentials.
	var req authsdk.LoginRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusUnprocessableEntity, msgMissingInformation)
		return
	}

	pair, err := h.SessionService.Login(ctx, req.Username, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMissingCredentials):
		httpx.WriteMessage(w, http.StatusUnprocessableEntity, msgMissingInformation)
		return
	case errors.Is(err, service.ErrUnknownUser):
		httpx.WriteMessage(w, http.StatusForbidden, msgUserDoesntExist)
		return
	case errors.Is(err, service.ErrBadPassword):
		httpx.WriteStatus(w, http.StatusForbidden)
		return
	default:
		slogx.FromContext(ctx).Error("login failed", "err", err)
		httpx.WriteServerError(w, err, h.Production)
		return
	}

	httpx.SetSessionCookie(w, AccessCookieName, pair.AccessToken)
	httpx.WriteStatus(w, http.StatusOK)
}

// RefreshHandler serves GET /refreshToken
type RefreshHandler struct {
	SessionService *service.SessionService
	Production     bool
}

// ServeHTTP godoc
//
//	@Summary		Refresh the access token
//	@Description	Exchanges the access token cookie, which may have expired, for a new one. The refresh token stored
//	@Description	for the user must still be valid and belong to the same session as the access token.
//	@Tags			Session
//	@Security		CookieAuth
//	@Success		200	"empty body, Set-Cookie: noteful-auth-token"
//	@Failure		403	{object}	authsdk.MessageResponse	"Access token is missing (empty body on any other rejection)"
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Header			200	{string}	Set-Cookie	"noteful-auth-token=<jwt>; Path=/; HttpOnly; Secure"
//	@Router			/refreshToken [get].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pair, err := h.SessionService.Refresh(ctx, httpx.CookieValue(r, AccessCookieName))
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMissingToken):
		httpx.WriteMessage(w, http.StatusForbidden, msgTokenMissing)
		return
	case errors.Is(err, service.ErrStoreUnavailable):
		slogx.FromContext(ctx).Error("refresh failed", "err", err)
		httpx.WriteServerError(w, err, h.Production)
		return
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrNoActiveSession),
		errors.Is(err, service.ErrInvalidSession):
		slogx.FromContext(ctx).Debug("refresh rejected", "err", err)
		httpx.WriteStatus(w, http.StatusForbidden)
		return
	default:
		slogx.FromContext(ctx).Error("refresh failed", "err", err)
		httpx.WriteServerError(w, err, h.Production)
		return
	}

	httpx.SetSessionCookie(w, AccessCookieName, pair.AccessToken)
	httpx.WriteStatus(w, http.StatusOK)
}

// HelloHandler godoc
//
//	@Summary		Greeting
//	@Description	Gated landing route, useful to check that the cookie is accepted
//	@Tags			Session
//	@Security		CookieAuth
//	@Produce		html
//	@Success		200	{string}	string	"Hello, world!"
//	@Failure		403	"empty body"
//	@Router			/ [get].
func HelloHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello, world!"))
}
