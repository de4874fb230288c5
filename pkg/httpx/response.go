package httpx

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the {"msg": ...} body used for client errors.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ErrorResponse is the 500 body. Production responses only carry the
// generic Error.Message; otherwise Message and Detail describe the failure.
type ErrorResponse struct {
	Error   any    `json:"error"`
	Message string `json:"message,omitempty"`
}

// ErrorBody is the production shape of ErrorResponse.Error.
type ErrorBody struct {
	Message string `json:"message"`
}

// ServerErrorMessage is the only detail a production 500 reveals.
const ServerErrorMessage = "server error, internal error please submit a bug report"

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes {"msg": msg} with code.
func WriteMessage(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, MessageResponse{Msg: msg})
}

// WriteStatus writes code with an empty body.
func WriteStatus(w http.ResponseWriter, code int) {
	NoCache(w)
	w.WriteHeader(code)
}

// WriteServerError writes a 500. Outside production the error text is
// included to help debugging.
func WriteServerError(w http.ResponseWriter, err error, production bool) {
	if production || err == nil {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: ErrorBody{Message: ServerErrorMessage},
		})
		return
	}
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Message: err.Error(),
		Error:   err.Error(),
	})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
