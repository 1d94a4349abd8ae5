package controller

import (
	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/pkg/serverutils"
	"prep-tool-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IImportController interface {
	RegisterRoutes(r fiber.Router)
	Scan(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
}

type importController struct {
	service service.IImportService
}

func NewImportController(service service.IImportService) IImportController {
	return &importController{service: service}
}

func (c *importController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/import")
	h.Post("/scan", c.Scan)
	h.Post("/preview", c.Preview)
	h.Post("/create", c.Create)
}

func (c *importController) Scan(ctx *fiber.Ctx) error {
	var req dto.ScanFolderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Scan(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success scan folder", res))
}

func (c *importController) Preview(ctx *fiber.Ctx) error {
	var req dto.ImportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Preview(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success preview import", dto.ImportPreviewResponse{Result: res}))
}

func (c *importController) Create(ctx *fiber.Ctx) error {
	var req dto.ImportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success import session", res))
}
