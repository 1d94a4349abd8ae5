package controller

import (
	"fmt"
	"strconv"

	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/pkg/apperror"
	"prep-tool-be/internal/pkg/serverutils"
	"prep-tool-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IViewerStateController interface {
	RegisterRoutes(r fiber.Router)
	GetConfidence(ctx *fiber.Ctx) error
	ConfidenceSummary(ctx *fiber.Ctx) error
	RateConfidence(ctx *fiber.Ctx) error
	ResetConfidence(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type viewerStateController struct {
	service service.IViewerStateService
}

func NewViewerStateController(service service.IViewerStateService) IViewerStateController {
	return &viewerStateController{service: service}
}

func (c *viewerStateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/:id")
	h.Get("/confidence", c.GetConfidence)
	h.Get("/confidence/summary", c.ConfidenceSummary)
	h.Put("/confidence/:index", c.RateConfidence)
	h.Delete("/confidence", c.ResetConfidence)
	h.Get("/practice-history", c.GetHistory)
}

func (c *viewerStateController) GetConfidence(ctx *fiber.Ctx) error {
	res, err := c.service.GetConfidence(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get confidence", res))
}

func (c *viewerStateController) ConfidenceSummary(ctx *fiber.Ctx) error {
	res, err := c.service.GetConfidence(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get confidence summary", res.Summary))
}

func (c *viewerStateController) RateConfidence(ctx *fiber.Ctx) error {
	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil {
		return fmt.Errorf("%w: index must be an integer", apperror.ErrValidation)
	}

	var req dto.RateConfidenceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RateConfidence(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id"), index, *req.Level)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rate confidence", res))
}

func (c *viewerStateController) ResetConfidence(ctx *fiber.Ctx) error {
	if err := c.service.ResetConfidence(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reset confidence", dto.AckResponse{Ok: true}))
}

func (c *viewerStateController) GetHistory(ctx *fiber.Ctx) error {
	res, err := c.service.GetHistory(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get practice history", res))
}
