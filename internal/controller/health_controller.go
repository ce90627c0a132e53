package controller

import (
	"context"
	"cyberar_admin_backend/internal/repository"
	"cyberar_admin_backend/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type HealthController struct {
	Store repository.DocumentStore
	Redis *redis.Client
}

func NewHealthController(store repository.DocumentStore, rdb *redis.Client) *HealthController {
	return &HealthController{Store: store, Redis: rdb}
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	if err := c.Store.Ping(pingCtx); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Document store unavailable")
		return
	}

	components := gin.H{"store": "up"}
	if c.Redis != nil {
		if err := c.Redis.Ping(pingCtx).Err(); err != nil {
			util.Error(ctx, http.StatusServiceUnavailable, "Redis unavailable")
			return
		}
		components["redis"] = "up"
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
