package hawk

import (
	"context"
	"net/http"
)

type contextKey struct{}

// Middleware puts the guard in front of an http.Handler. Requests that
// fail the guard are answered immediately with the mapped status; on
// success the parsed credential is stored in the request context and
// can be read back with FromContext. Compatible with chi's Use.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cred, err := g.Evaluate(r)
		if err != nil {
			http.Error(w, err.Error(), Status(err))
			return
		}

		ctx := context.WithValue(r.Context(), contextKey{}, cred)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the credential stored by Middleware, or nil when
// the request did not pass through a guard.
func FromContext(ctx context.Context) *Credential {
	cred, _ := ctx.Value(contextKey{}).(*Credential)
	return cred
}
