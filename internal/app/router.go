package app

import (
	"cyberar_admin_backend/internal/config"
	"cyberar_admin_backend/internal/middleware"
	"cyberar_admin_backend/internal/model"
	"cyberar_admin_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 2. 仪表盘：教师与管理员
	dashboard := router.Group("/api/dashboard")
	dashboard.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.RoleMiddleware(model.Teacher))
	{
		dashboard.GET("/summary", c.dashboard.GetSummary)
		dashboard.GET("/leaderboard", c.dashboard.GetLeaderboard)
		dashboard.GET("/charts/lessons", c.dashboard.GetLessonsPerModule)
		dashboard.GET("/charts/scores", c.dashboard.GetAverageScorePerModule)
		dashboard.GET("/overview", c.dashboard.GetOverview)
	}

	// 3. 管理员相关接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/collections/:name/count", c.admin.CountCollection)
	}
}
