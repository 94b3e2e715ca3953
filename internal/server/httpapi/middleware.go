package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/sellegate/internal/common"
	"github.com/dmitrijs2005/sellegate/internal/server/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// withAuth resolves the Authorization bearer token into an auth.Identity and
// stores it in the request context. Missing or bad tokens end the request
// with a 401 envelope.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			s.writeError(r.Context(), w, common.ErrorUnauthorized)
			return
		}

		ident, err := auth.IdentityFromToken(token, s.jwtSecret)
		if err != nil {
			s.writeError(r.Context(), w, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFromContext(ctx context.Context) *auth.Identity {
	ident, _ := ctx.Value(identityKey).(*auth.Identity)
	return ident
}
