package controller

import (
	"fmt"
	"strconv"

	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/pkg/apperror"
	"prep-tool-be/internal/pkg/serverutils"
	"prep-tool-be/internal/service"
	"prep-tool-be/pkg/editor"

	"github.com/gofiber/fiber/v2"
)

type IEditorController interface {
	RegisterRoutes(r fiber.Router)
	Open(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
	Discard(ctx *fiber.Ctx) error
}

type editorController struct {
	service service.IEditorService
}

func NewEditorController(service service.IEditorService) IEditorController {
	return &editorController{service: service}
}

func (c *editorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/:id/editor")
	h.Post("", c.Open)
	h.Get("", c.Show)
	h.Delete("", c.Discard)
	h.Post("/:collection/add", c.Add)
	h.Post("/:collection/save", c.Save)
	h.Delete("/:collection/:index", c.Remove)
}

func collectionParam(ctx *fiber.Ctx) editor.Collection {
	return editor.Collection(ctx.Params("collection"))
}

func (c *editorController) Open(ctx *fiber.Ctx) error {
	res, err := c.service.Open(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success open editor", res))
}

func (c *editorController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get draft", res))
}

func (c *editorController) Add(ctx *fiber.Ctx) error {
	res, err := c.service.Add(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id"), collectionParam(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add item", res))
}

func (c *editorController) Remove(ctx *fiber.Ctx) error {
	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil {
		return fmt.Errorf("%w: index must be an integer", apperror.ErrValidation)
	}

	res, err := c.service.Remove(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id"), collectionParam(ctx), index)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove item", res))
}

func (c *editorController) Save(ctx *fiber.Ctx) error {
	var req dto.SaveCollectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Save(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id"), collectionParam(ctx), &req)
	if err != nil {
		if res == nil {
			return err
		}
		code := serverutils.StatusFor(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponseWithData(code, err.Error(), res))
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Toast.Message, res))
}

func (c *editorController) Discard(ctx *fiber.Ctx) error {
	c.service.Discard(ctx.Context(), serverutils.ViewerId(ctx), ctx.Params("id"))
	return ctx.JSON(serverutils.SuccessResponse("Success discard draft", dto.AckResponse{Ok: true}))
}
