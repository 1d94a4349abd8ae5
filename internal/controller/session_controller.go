package controller

import (
	"encoding/json"
	"fmt"
	"strconv"

	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/entity"
	"prep-tool-be/internal/pkg/apperror"
	"prep-tool-be/internal/pkg/serverutils"
	"prep-tool-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Duplicate(ctx *fiber.Ctx) error
	Types(ctx *fiber.Ctx) error
	AddTalkingPoint(ctx *fiber.Ctx) error
	DeleteTalkingPoint(ctx *fiber.Ctx) error
	AddPracticeQuestion(ctx *fiber.Ctx) error
	AddCheatsheetCard(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	r.Get("/session-types", c.Types)

	h := r.Group("/session")
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/duplicate", c.Duplicate)
	h.Post("/:id/talking-point", c.AddTalkingPoint)
	h.Delete("/:id/talking-point/:idx", c.DeleteTalkingPoint)
	h.Post("/:id/practice-question", c.AddPracticeQuestion)
	h.Post("/:id/cheatsheet-card", c.AddCheatsheetCard)
}

func (c *sessionController) Types(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get session types", entity.SessionTypes))
}

func (c *sessionController) GetAll(ctx *fiber.Ctx) error {
	var query dto.ListSessionsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all sessions", res))
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
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

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

// Show returns the stored document, or with ?render=safe a copy escaped for display.
func (c *sessionController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	if ctx.Query("render") == "safe" {
		res = res.RenderSafe()
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

// Update replaces every top-level field present in the body.
func (c *sessionController) Update(ctx *fiber.Ctx) error {
	var patch entity.SessionPatch
	if err := json.Unmarshal(ctx.Body(), &patch); err != nil {
		return fmt.Errorf("%w: body must be a JSON object", apperror.ErrValidation)
	}

	res, err := c.service.Update(ctx.Context(), ctx.Params("id"), patch)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update session", dto.UpdateSessionResponse{Ok: true, Session: res}))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete session", dto.AckResponse{Ok: true}))
}

func (c *sessionController) Duplicate(ctx *fiber.Ctx) error {
	res, err := c.service.Duplicate(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success duplicate session", res))
}

func (c *sessionController) AddTalkingPoint(ctx *fiber.Ctx) error {
	var req entity.TalkingPoint
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.AddTalkingPoint(ctx.Context(), ctx.Params("id"), req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add talking point", dto.AckResponse{Ok: true}))
}

func (c *sessionController) DeleteTalkingPoint(ctx *fiber.Ctx) error {
	idx, err := strconv.Atoi(ctx.Params("idx"))
	if err != nil {
		return fmt.Errorf("%w: idx must be an integer", apperror.ErrValidation)
	}

	if err := c.service.DeleteTalkingPoint(ctx.Context(), ctx.Params("id"), idx); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete talking point", dto.AckResponse{Ok: true}))
}

func (c *sessionController) AddPracticeQuestion(ctx *fiber.Ctx) error {
	var req entity.PracticeQuestion
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.AddPracticeQuestion(ctx.Context(), ctx.Params("id"), req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add practice question", dto.AckResponse{Ok: true}))
}

func (c *sessionController) AddCheatsheetCard(ctx *fiber.Ctx) error {
	var req entity.CheatsheetCard
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.AddCheatsheetCard(ctx.Context(), ctx.Params("id"), req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add cheatsheet card", dto.AckResponse{Ok: true}))
}
