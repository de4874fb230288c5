//go:build e2e

package noteful_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/noteful/pkg/authsdk"
)

func TestLoginAndHello(t *testing.T) {
	client := authsdk.NewSDKClient(startNoteful(t, nil))

	session := login(t, client)

	body, err := session.Hello(t.Context())
	require.NoError(t, err)
	require.Equal(t, "Hello, world!", body)
}

func TestLoginFailures(t *testing.T) {
	client := authsdk.NewSDKClient(startNoteful(t, nil))

	_, err := client.Login(t.Context(), "nobody", "whatever")
	assertForbidden(t, err, "unknown user")
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "User doesnt exist", apiErr.Msg)

	_, err = client.Login(t.Context(), seedUsername, "wrong")
	assertForbidden(t, err, "wrong password")

	_, err = client.Login(t.Context(), "", "")
	require.True(t, authsdk.IsStatus(err, 422), "missing fields: %v", err)
}

func TestGateWithoutSession(t *testing.T) {
	client := authsdk.NewSDKClient(startNoteful(t, nil))

	anonymous := client.NewSessionFromToken("")
	anonymous.AutoRefresh = false
	_, err := anonymous.Hello(t.Context())
	assertForbidden(t, err, "no cookie")

	forged := client.NewSessionFromToken("not.a.token")
	forged.AutoRefresh = false
	_, err = forged.ListFolders(t.Context())
	assertForbidden(t, err, "garbage cookie")
}

func TestExpiredAccessTokenIsRefreshed(t *testing.T) {
	client := authsdk.NewSDKClient(startNoteful(t, map[string]string{
		"ACCESS_TOKEN_LIFE": "2s",
	}))

	session := login(t, client)
	first := session.AccessToken()

	time.Sleep(3 * time.Second)

	// The gate rejects the stale cookie and the session refreshes once.
	body, err := session.Hello(t.Context())
	require.NoError(t, err)
	require.Equal(t, "Hello, world!", body)
	require.NotEqual(t, first, session.AccessToken())

	// The old cookie belongs to a superseded session now.
	stale := client.NewSessionFromToken(first)
	stale.AutoRefresh = false
	assertForbidden(t, stale.Refresh(t.Context()), "superseded session")
}

func TestNewLoginSupersedesOldSession(t *testing.T) {
	client := authsdk.NewSDKClient(startNoteful(t, nil))

	older := login(t, client)
	newer := login(t, client)

	assertForbidden(t, older.Refresh(t.Context()), "older session")
	require.NoError(t, newer.Refresh(t.Context()))
}

func TestHealth(t *testing.T) {
	client := authsdk.NewSDKClient(startNoteful(t, nil))

	live, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}
