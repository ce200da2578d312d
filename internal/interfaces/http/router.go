package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/seller-dashboard/internal/application/analytics"
	"github.com/jhoicas/seller-dashboard/internal/application/auth"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TopUC        *analytics.TopUseCase
	GoalUC       *analytics.GoalUseCase
	ComparisonUC *analytics.ComparisonUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Dashboard (protegido: el 401 corta antes de cualquier agregación)
	dashboard := api.Group("/dashboard", AuthMiddleware(deps.JWTSecret))

	dashboardHandler := NewDashboardHandler(deps.TopUC, deps.ComparisonUC)
	dashboard.Get("/top", dashboardHandler.GetTop)
	dashboard.Get("/comparison", dashboardHandler.GetComparison)

	goalHandler := NewGoalHandler(deps.GoalUC)
	dashboard.Get("/goals", goalHandler.GetProgress)
	dashboard.Put("/goals", goalHandler.UpsertGoal)
}
