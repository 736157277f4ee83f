package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hywel/accountd/internal/api/respond"
)

type contextKey string

const subjectKey contextKey = "subject"

// TokenValidator verifies a compact token and returns its subject.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// Auth rejects requests without a valid Bearer token and stores the token
// subject (the user's email) in the request context.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respond.Error(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				respond.Error(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}

			subject, err := validator.ValidateToken(parts[1])
			if err != nil || subject == "" {
				respond.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok
}
