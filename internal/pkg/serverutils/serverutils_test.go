package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"prep-tool-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	var syntaxErr error = &json.SyntaxError{}
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: session x", apperror.ErrNotFound), fiber.StatusNotFound},
		{fmt.Errorf("%w: bad", apperror.ErrValidation), fiber.StatusBadRequest},
		{apperror.ErrUnauthorized, fiber.StatusUnauthorized},
		{fmt.Errorf("%w: .pdf", apperror.ErrUnsupportedFile), fiber.StatusUnprocessableEntity},
		{fmt.Errorf("%w: disk full", apperror.ErrPersistence), fiber.StatusInternalServerError},
		{fiber.NewError(fiber.StatusTeapot, "tea"), fiber.StatusTeapot},
		{syntaxErr, fiber.StatusBadRequest},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Type string `validate:"required,oneof=a b"`
	}
	assert.NoError(t, ValidateRequest(req{Type: "a"}))

	err := ValidateRequest(req{Type: "c"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Contains(t, err.Error(), "type must be one of [a b]")
}

func newGuardedApp(enabled bool, secret []byte) *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware(enabled, secret))
	app.Get("/whoami", func(ctx *fiber.Ctx) error {
		return ctx.SendString(ViewerId(ctx))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	secret := []byte("test-secret")
	sign := func(subject string, key []byte, expires time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
		})
		s, err := token.SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := sign("coach", secret, time.Now().Add(time.Hour))

	tests := []struct {
		name       string
		enabled    bool
		path       string
		header     map[string]string
		cookie     string
		wantStatus int
		wantViewer string
	}{
		{name: "disabled defaults to local", path: "/whoami", wantStatus: 200, wantViewer: DefaultViewer},
		{name: "disabled reads viewer header", path: "/whoami", header: map[string]string{ViewerIdHeader: "alice"}, wantStatus: 200, wantViewer: "alice"},
		{name: "missing token", enabled: true, path: "/whoami", wantStatus: 401},
		{name: "bearer token", enabled: true, path: "/whoami", header: map[string]string{"Authorization": "Bearer " + valid}, wantStatus: 200, wantViewer: "coach"},
		{name: "cookie token", enabled: true, path: "/whoami", cookie: valid, wantStatus: 200, wantViewer: "coach"},
		{name: "query token", enabled: true, path: "/whoami?token=" + valid, wantStatus: 200, wantViewer: "coach"},
		{name: "wrong key", enabled: true, path: "/whoami", header: map[string]string{"Authorization": "Bearer " + sign("coach", []byte("other"), time.Now().Add(time.Hour))}, wantStatus: 401},
		{name: "expired", enabled: true, path: "/whoami", header: map[string]string{"Authorization": "Bearer " + sign("coach", secret, time.Now().Add(-time.Minute))}, wantStatus: 401},
		{name: "header ignored when enabled", enabled: true, path: "/whoami", header: map[string]string{ViewerIdHeader: "alice"}, wantStatus: 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newGuardedApp(tt.enabled, secret)
			req := httptest.NewRequest("GET", tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			if tt.cookie != "" {
				req.Header.Set("Cookie", TokenCookie+"="+tt.cookie)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantViewer != "" {
				b, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.wantViewer, string(b))
			}
		})
	}
}
