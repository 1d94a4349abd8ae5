package controller

import (
	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/pkg/serverutils"
	"prep-tool-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRuntimeController interface {
	RegisterRoutes(r fiber.Router)
	Open(ctx *fiber.Ctx) error
	Event(ctx *fiber.Ctx) error
	State(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
}

type runtimeController struct {
	service service.IRuntimeService
}

func NewRuntimeController(service service.IRuntimeService) IRuntimeController {
	return &runtimeController{service: service}
}

func (c *runtimeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/:id/runtime/:panel")
	h.Post("/open", c.Open)
	h.Post("/event", c.Event)
	h.Get("/state", c.State)
	h.Delete("", c.Close)
}

func panelParam(ctx *fiber.Ctx) dto.RuntimePanel {
	return dto.RuntimePanel(ctx.Params("panel"))
}

func (c *runtimeController) Open(ctx *fiber.Ctx) error {
	res, err := c.service.Open(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id"), panelParam(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success open panel", res))
}

func (c *runtimeController) Event(ctx *fiber.Ctx) error {
	var req dto.RuntimeEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Apply(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id"), panelParam(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success apply event", res))
}

func (c *runtimeController) State(ctx *fiber.Ctx) error {
	res, err := c.service.State(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id"), panelParam(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get panel state", res))
}

func (c *runtimeController) Close(ctx *fiber.Ctx) error {
	c.service.Close(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id"), panelParam(ctx))
	return ctx.JSON(serverutils.SuccessResponse("Success close panel", dto.AckResponse{Ok: true}))
}
