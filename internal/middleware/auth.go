package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cooooin/harmony/internal/api/httpx"
	"github.com/cooooin/harmony/internal/auth"
	"github.com/cooooin/harmony/internal/models"
)

type AuthMiddleware struct {
	TM *auth.TokenManager
}

// Handler rejects any request without a valid bearer claim. There is no
// anonymous fallback: a missing, malformed or stale claim is a 401.
func (a *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			httpx.WriteErr(w, fmt.Errorf("missing bearer claim: %w", models.ErrUnauthorized))
			return
		}
		personID, err := a.TM.Verify(token)
		if err != nil {
			httpx.WriteErr(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPerson(r.Context(), personID)))
	})
}
