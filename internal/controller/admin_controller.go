package controller

import (
	"cyberar_admin_backend/internal/repository"
	"cyberar_admin_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Collections *repository.CollectionRepository
}

func NewAdminController(collections *repository.CollectionRepository) *AdminController {
	return &AdminController{Collections: collections}
}

// @Summary 集合文档数量
// @Description 仅管理员可用
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Param name path string true "集合名称"
// @Success 200 {object} util.Response
// @Router /api/admin/collections/{name}/count [get]
func (c *AdminController) CountCollection(ctx *gin.Context) {
	name := ctx.Param("name")

	n, err := c.Collections.Count(ctx.Request.Context(), name)
	if errors.Is(err, util.ErrUnknownCollection) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"collection": name, "count": n})
}
