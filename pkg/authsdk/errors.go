package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNoCookie is returned when a successful login or refresh response does
// not carry the access cookie.
var ErrNoCookie = errors.New("authsdk: response carried no access cookie")

// APIError is a non-success response from the API. Msg is taken from the
// body when the server sent one; many rejections are deliberately empty.
type APIError struct {
	StatusCode int
	Msg        string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("noteful: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("noteful: %d %s", e.StatusCode, e.Msg)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// parseErrorResponse builds an APIError from an error response body. The
// server speaks two shapes: {"msg":...} for client errors and an error
// envelope for server errors.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var msgResp MessageResponse
	if err := json.Unmarshal(body, &msgResp); err == nil && msgResp.Msg != "" {
		apiErr.Msg = msgResp.Msg
		return apiErr
	}

	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			apiErr.Msg = envelope.Message
			return apiErr
		}

		var inner struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &inner); err == nil && inner.Message != "" {
			apiErr.Msg = inner.Message
			return apiErr
		}
	}

	apiErr.Msg = strings.TrimSpace(string(body))
	return apiErr
}
