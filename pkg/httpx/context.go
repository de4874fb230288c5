package httpx

import (
	"context"

	"github.com/aussiebroadwan/noteful/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeySubject ctxKey = "subject"
	CtxKeyClaims  ctxKey = "claims"
)

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeySubject, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// SubjectFromContext returns the username the gate admitted the request as.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(CtxKeySubject).(string)
	return s, ok && s != ""
}

// ClaimsFromContext returns the verified access token claims.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}
