/*
Package authsdk provides a client SDK for the Noteful API.

# Overview

Noteful authenticates browsers with a single HttpOnly cookie holding a short
lived access token. The refresh token never leaves the server; a client
exchanges an expired (but authentic) access token for a new one by calling
GET /refreshToken.

# SDKClient vs Session

  - SDKClient: unauthenticated operations (login, health checks)
  - Session: authenticated operations carrying the access cookie

	client := authsdk.NewSDKClient("http://localhost:8000")

	health, err := client.GetReadiness(ctx)

	session, err := client.Login(ctx, "ryan", "hunter2")
	if err != nil {
		var apiErr *authsdk.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
			// unknown user or wrong password
		}
	}

	folder, err := session.CreateFolder(ctx, "Work")
	note, err := session.CreateNote(ctx, authsdk.NoteRequest{
		NoteName: "Standup",
		FolderID: folder.ID,
	})

# Token Refresh

When a gated request is rejected with 403 the Session calls Refresh once and
retries the request with the new cookie. Refresh can also be called directly.
Disable the retry with Session.AutoRefresh = false.

# Thread Safety

SDKClient and Session are safe for concurrent use. Two sessions for the same
user share one refresh slot on the server: the most recent login or refresh
wins and the other session can no longer refresh.
*/
package authsdk
