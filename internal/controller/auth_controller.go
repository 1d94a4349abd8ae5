package controller

import (
	"time"

	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/pkg/serverutils"
	"prep-tool-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

// RegisterRoutes must run before the auth middleware is mounted so login stays public.
func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Get("/status", c.Status)
	h.Post("/login", c.Login)
	h.Post("/logout", c.Logout)
}

func (c *authController) Status(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get auth status", dto.AuthStatusResponse{Enabled: c.service.Enabled()}))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     serverutils.TokenCookie,
		Value:    res.AccessToken,
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

// Logout is stateless: tokens simply expire, so only the cookie is cleared.
func (c *authController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     serverutils.TokenCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out successfully", nil))
}
