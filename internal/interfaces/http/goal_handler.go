package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/seller-dashboard/internal/application/analytics"
	"github.com/jhoicas/seller-dashboard/internal/application/dto"
	"github.com/jhoicas/seller-dashboard/internal/domain"
	"github.com/jhoicas/seller-dashboard/internal/domain/entity"
)

// GoalHandler maneja los endpoints de metas mensuales.
type GoalHandler struct {
	uc *analytics.GoalUseCase
}

// NewGoalHandler construye el handler.
func NewGoalHandler(uc *analytics.GoalUseCase) *GoalHandler {
	return &GoalHandler{uc: uc}
}

// GetProgress devuelve el avance real-contra-meta del mes y el YTD.
// GET /api/dashboard/goals?year=&month=&platform=
func (h *GoalHandler) GetProgress(c *fiber.Ctx) error {
	var req dto.GoalProgressRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	filter, ok := entity.ParsePlatformFilter(req.Platform)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "plataforma desconocida: " + req.Platform,
		})
	}

	progress, err := h.uc.GetProgress(c.Context(), filter, req.Year, req.Month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_PARAMS", Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(progress)
}

// UpsertGoal fija o reemplaza la meta de la clave (platform, year, month, type).
// PUT /api/dashboard/goals
func (h *GoalHandler) UpsertGoal(c *fiber.Ctx) error {
	var req dto.UpsertGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "body inválido",
		})
	}

	goal, err := h.uc.UpsertGoal(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_PARAMS", Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(goal)
}
