package controller

import (
	"github.com/gofiber/fiber/v2"

	"tenglaafi-be/internal/apperrors"
	"tenglaafi-be/internal/dto"
	"tenglaafi-be/internal/service"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	BatchQuery(ctx *fiber.Ctx) error
	Suggestions(ctx *fiber.Ctx) error
	ClearCache(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type queryController struct {
	queryService service.IQueryService
}

func NewQueryController(queryService service.IQueryService) IQueryController {
	return &queryController{
		queryService: queryService,
	}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/query/v1")
	h.Post("", c.Query)
	h.Post("batch", c.BatchQuery)
	h.Get("suggestions", c.Suggestions)
	h.Delete("cache", c.ClearCache)
	h.Get("stats", c.Stats)
	h.Get("health", c.Health)
}

func (c *queryController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.InvalidQuery("malformed request body", err)
	}

	answer, err := c.queryService.Answer(ctx.Context(), req.Question, req.TopK)
	if err != nil {
		return err
	}

	res := dto.QueryResponse{
		Answer:                answer.Text,
		GenerationTimeSeconds: answer.GenerationTimeSeconds,
		CacheHit:              answer.CacheHit,
	}
	// Sources ship unless the caller opted out.
	if req.IncludeSources == nil || *req.IncludeSources {
		res.Sources = answer.Sources
	}

	return ctx.JSON(res)
}

func (c *queryController) BatchQuery(ctx *fiber.Ctx) error {
	var req dto.BatchQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.InvalidQuery("malformed request body", err)
	}

	res, err := c.queryService.BatchAnswer(ctx.Context(), req.Questions, req.TopK)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *queryController) Suggestions(ctx *fiber.Ctx) error {
	question := ctx.Query("question")
	limit := ctx.QueryInt("limit", 0)

	suggestions, err := c.queryService.SimilarTopics(ctx.Context(), question, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.SimilarTopicsResponse{Suggestions: suggestions})
}

func (c *queryController) ClearCache(ctx *fiber.Ctx) error {
	cleared := c.queryService.ClearCache(ctx.Context())
	return ctx.JSON(dto.ClearCacheResponse{Cleared: cleared})
}

func (c *queryController) Stats(ctx *fiber.Ctx) error {
	stats, err := c.queryService.Stats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(stats)
}

func (c *queryController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}
