package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/aussiebroadwan/noteful/pkg/authsdk"
	"github.com/aussiebroadwan/noteful/pkg/httpx"
)

const probeTimeout = 2 * time.Second

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe endpoint returning basic service health status, uptime, and version information
//	@Description	This endpoint always returns 200 OK if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint checking the database and, when configured, the refresh token backend
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	sessions Pinger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := authsdk.HealthResponse{
			Status:  "ok",
			Version: version,
			Checks:  &authsdk.HealthChecks{Database: probe(r.Context(), st)},
		}
		if sessions != nil {
			resp.Checks.Sessions = probe(r.Context(), sessions)
		}

		statusCode := http.StatusOK
		if resp.Checks.Database != "ok" || (sessions != nil && resp.Checks.Sessions != "ok") {
			resp.Status = "unavailable"
			statusCode = http.StatusServiceUnavailable
		}

		resp.Uptime = time.Since(startTime).String()
		httpx.WriteJSON(w, statusCode, resp)
	}
}

// probe pings p under probeTimeout and reports "ok" or the error.
func probe(ctx context.Context, p Pinger) string {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
