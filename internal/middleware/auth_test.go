package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finanzas-app/finanzas-service/internal/config"
)

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuth(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	validToken := signToken(t, cfg.JWTSecret, "42")

	tests := []struct {
		name           string
		setupRequest   func(r *http.Request)
		expectedStatus int
		expectedUserID int64
	}{
		{
			name: "valid token",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+validToken)
			},
			expectedStatus: http.StatusOK,
			expectedUserID: 42,
		},
		{
			name:           "missing header",
			setupRequest:   func(r *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "malformed header",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", validToken)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "invalid token",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not-a-token")
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong secret",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "42"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "non-numeric subject",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, cfg.JWTSecret, "alice"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := UserID(r.Context())
				require.True(t, ok)
				gotUserID = id
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/products", nil)
			tt.setupRequest(req)
			rec := httptest.NewRecorder()

			Auth(cfg)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedUserID != 0 {
				assert.Equal(t, tt.expectedUserID, gotUserID)
			}
		})
	}
}
