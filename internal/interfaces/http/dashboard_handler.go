package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/seller-dashboard/internal/application/analytics"
	"github.com/jhoicas/seller-dashboard/internal/application/dto"
	"github.com/jhoicas/seller-dashboard/internal/domain/entity"
)

// topCacheControl anuncia al CDN/navegador el mismo TTL que usa la caché del
// servidor, con ventana stale-while-revalidate de 5 minutos.
const topCacheControl = "public, max-age=60, stale-while-revalidate=300"

// DashboardHandler maneja los endpoints del dashboard de ventas.
type DashboardHandler struct {
	topUC        *analytics.TopUseCase
	comparisonUC *analytics.ComparisonUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(topUC *analytics.TopUseCase, comparisonUC *analytics.ComparisonUseCase) *DashboardHandler {
	return &DashboardHandler{topUC: topUC, comparisonUC: comparisonUC}
}

// GetTop devuelve los rankings top-5 y las tarjetas por plataforma.
// GET /api/dashboard/top?platform=&start=&end=
//
// Respuesta: DashboardTopDTO (ok, topProducts[5], topProvinces[5],
// platforms[3] con slots nulos para "sin datos"). Si la consulta de
// plataformas falla, la respuesta sigue siendo 200 con los slots vacíos.
func (h *DashboardHandler) GetTop(c *fiber.Ctx) error {
	var req dto.TopRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.AggregationErrorResponse{
			Error: "parámetros de consulta inválidos",
		})
	}

	filter, ok := entity.ParsePlatformFilter(req.Platform)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.AggregationErrorResponse{
			Error: "plataforma desconocida", Details: req.Platform,
		})
	}
	start, err := parseDate(req.Start)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.AggregationErrorResponse{
			Error: "fecha de inicio inválida", Details: req.Start,
		})
	}
	end, err := parseDate(req.End)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.AggregationErrorResponse{
			Error: "fecha de fin inválida", Details: req.End,
		})
	}

	top, err := h.topUC.GetTop(c.Context(), filter, start, end)
	if err != nil {
		// Mensaje genérico al cliente, detalle machine-readable para logs
		return c.Status(fiber.StatusInternalServerError).JSON(dto.AggregationErrorResponse{
			Error:   "no se pudieron cargar los datos del dashboard",
			Details: err.Error(),
		})
	}

	c.Set(fiber.HeaderCacheControl, topCacheControl)
	return c.JSON(top)
}

// GetComparison devuelve la serie mensual comparada por plataforma.
// GET /api/dashboard/comparison?platform=&start=&end=
func (h *DashboardHandler) GetComparison(c *fiber.Ctx) error {
	var req dto.ComparisonRequest
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
	start, err := parseDate(req.Start)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "fecha de inicio inválida: " + req.Start,
		})
	}
	end, err := parseDate(req.End)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "fecha de fin inválida: " + req.End,
		})
	}

	comparison, err := h.comparisonUC.GetComparison(c.Context(), filter, start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(comparison)
}

// parseDate interpreta YYYY-MM-DD; vacío devuelve nil (sin límite).
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
