package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hywel/accountd/internal/api/middleware"
	"github.com/stretchr/testify/assert"
)

type fakeValidator struct {
	subject string
	err     error
}

func (f fakeValidator) ValidateToken(string) (string, error) {
	return f.subject, f.err
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		validator      fakeValidator
		expectedStatus int
		expectSubject  string
	}{
		{
			name:           "valid bearer token",
			header:         "Bearer some-token",
			validator:      fakeValidator{subject: "alice@example.com"},
			expectedStatus: http.StatusOK,
			expectSubject:  "alice@example.com",
		},
		{
			name:           "missing header",
			validator:      fakeValidator{subject: "alice@example.com"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not a bearer scheme",
			header:         "Basic dXNlcjpwYXNz",
			validator:      fakeValidator{subject: "alice@example.com"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			header:         "Bearer bad-token",
			validator:      fakeValidator{err: errors.New("bad")},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSubject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSubject, _ = middleware.GetSubject(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			middleware.Auth(tt.validator)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectSubject, gotSubject)
		})
	}
}
