package httpx

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/aussiebroadwan/noteful/pkg/slogx"
)

// Recoverer turns a handler panic into a 500 written by WriteServerError.
// http.ErrAbortHandler is re-panicked so the server can abort the response.
func Recoverer(production bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}

				slogx.FromContext(r.Context()).Error("panic recovered",
					"err", err,
					"stack", string(debug.Stack()),
				)
				WriteServerError(w, err, production)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
