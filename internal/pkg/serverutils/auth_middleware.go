package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ViewerIdLocal  = "viewer_id"
	TokenCookie    = "prep_token"
	ViewerIdHeader = "X-Viewer-Id"
	DefaultViewer  = "local"
)

// AuthMiddleware guards routes with the HS256 token issued at login when auth is
// enabled. With auth disabled every request passes and the viewer id comes from
// the X-Viewer-Id header.
func AuthMiddleware(enabled bool, secret []byte) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !enabled {
			viewer := strings.TrimSpace(ctx.Get(ViewerIdHeader))
			if viewer == "" {
				viewer = DefaultViewer
			}
			ctx.Locals(ViewerIdLocal, viewer)
			return ctx.Next()
		}

		tokenStr := ctx.Cookies(TokenCookie)
		if authHeader := ctx.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr = authHeader[7:]
		}
		// browsers cannot set headers on a websocket handshake
		if tokenStr == "" {
			tokenStr = ctx.Query("token")
		}
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
		}

		ctx.Locals(ViewerIdLocal, subject)
		return ctx.Next()
	}
}

// ViewerId returns the identity the auth middleware attached to the request.
func ViewerId(ctx *fiber.Ctx) string {
	if v, ok := ctx.Locals(ViewerIdLocal).(string); ok && v != "" {
		return v
	}
	return DefaultViewer
}
