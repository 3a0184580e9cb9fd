// internal/api/routes.go
package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"applytrack/internal/common/logger"
	"applytrack/internal/common/observability"
	"applytrack/internal/search"
)

// Dependencies carries everything the route handlers need.
type Dependencies struct {
	Store         Store
	Searcher      search.Searcher
	Scheduler     ReminderScheduler
	DB            Pinger
	Logger        logger.Logger
	Observability *observability.Observability
}

// SetupRoutes registers all routes and global middleware.
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	e.Use(echomiddleware.Recover())
	e.Use(RequestLogger(deps.Logger, deps.Observability))

	e.GET("/health", HealthHandler(deps.DB))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	apps := e.Group("/api/applications")
	{
		apps.GET("", ListApplicationsHandler(deps.Store, deps.Searcher, deps.Logger))
		apps.POST("", CreateApplicationHandler(deps.Store, deps.Searcher, deps.Scheduler, deps.Logger))
		apps.GET("/recent", RecentApplicationsHandler(deps.Store, deps.Logger))
		apps.GET("/:id", GetApplicationHandler(deps.Store, deps.Logger))
		apps.PUT("/:id", UpdateApplicationHandler(deps.Store, deps.Searcher, deps.Scheduler, deps.Logger))
		apps.DELETE("/:id", DeleteApplicationHandler(deps.Store, deps.Searcher, deps.Scheduler, deps.Logger))
		apps.GET("/:id/transitions", TransitionsHandler(deps.Store, deps.Logger))
		apps.POST("/:id/transitions", ApplyTransitionHandler(deps.Store, deps.Logger))
	}

	e.GET("/api/analytics/summary", AnalyticsSummaryHandler(deps.Store, deps.Logger))
	e.GET("/api/followups", FollowUpsHandler(deps.Store, deps.Logger))
}
