package slogx_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/noteful/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{
		Service: "noteful",
		Version: "test",
		Env:     "production",
		Level:   "warn",
		Writer:  &buf,
	})

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "shown", lines[0]["msg"])
	require.Equal(t, "noteful", lines[0]["service"])
	require.Equal(t, "production", lines[0]["env"])
	require.Equal(t, "v", lines[0]["k"])
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, slogx.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, slogx.ParseLevel("warning"))
	require.Equal(t, slog.LevelError, slogx.ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, slogx.ParseLevel("nonsense"))
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "noteful", Writer: &buf})

	h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := slogx.WithSubject(r.Context(), "ryan")
		slogx.FromContext(ctx).Info("inside")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	t.Run("generates request id", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

		reqID := rec.Header().Get(slogx.RequestIDHeader)
		require.NotEmpty(t, reqID)

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 2)

		require.Equal(t, "inside", lines[0]["msg"])
		require.Equal(t, "ryan", lines[0]["subject"])
		require.Equal(t, reqID, lines[0]["req_id"])

		require.Equal(t, "http_request", lines[1]["msg"])
		require.Equal(t, float64(http.StatusTeapot), lines[1]["status"])
		require.Equal(t, float64(len("short and stout")), lines[1]["bytes"])
		require.Equal(t, "/api/notes", lines[1]["path"])
	})

	t.Run("propagates request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(slogx.RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, "abc-123", rec.Header().Get(slogx.RequestIDHeader))
		lines := decodeLines(t, &buf)
		require.Equal(t, "abc-123", lines[1]["req_id"])
	})
}
