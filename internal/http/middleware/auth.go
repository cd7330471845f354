package middleware

import (
	"net/http"
	"strings"

	"tunecrate/internal/auth"
)

// TokenVerifier verifies a bearer token and resolves the acting identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Authenticate resolves the bearer token into an Identity and attaches it to
// the request context. Requests without a valid token are rejected with 401;
// handlers behind this middleware can assume an identity is present.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			id, err := verifier.Verify(token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
