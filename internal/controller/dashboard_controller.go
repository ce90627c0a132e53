package controller

import (
	"cyberar_admin_backend/internal/service"
	"cyberar_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// @Summary 获取仪表盘统计卡片
// @Description 用户、模块、课时与测评总数
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/dashboard/summary [get]
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	summary, err := c.DashboardService.GetSummary(ctx.Request.Context())
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// @Summary 获取排行榜
// @Description 按总分降序排列的学生列表；传入 page 时分页返回
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param size query int false "每页数量" default(5)
// @Success 200 {object} util.Response
// @Router /api/dashboard/leaderboard [get]
func (c *DashboardController) GetLeaderboard(ctx *gin.Context) {
	entries, err := c.DashboardService.GetLeaderboard(ctx.Request.Context())
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	pageStr := ctx.Query("page")
	if pageStr == "" {
		util.Success(ctx, entries)
		return
	}

	page := util.ParsePositiveInt(pageStr, 1)
	size := util.ParsePositiveInt(ctx.Query("size"), util.DefaultLeaderboardPageSize)
	list, total := service.Paginate(entries, page, size)

	util.Success(ctx, util.PageResponse{
		List:  list,
		Total: int64(total),
		Page:  page,
		Limit: size,
	})
}

// @Summary 每个模块的课时数
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/dashboard/charts/lessons [get]
func (c *DashboardController) GetLessonsPerModule(ctx *gin.Context) {
	series, err := c.DashboardService.GetLessonsPerModule(ctx.Request.Context())
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, series)
}

// @Summary 每个模块的平均分
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/dashboard/charts/scores [get]
func (c *DashboardController) GetAverageScorePerModule(ctx *gin.Context) {
	series, err := c.DashboardService.GetAverageScorePerModule(ctx.Request.Context())
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, series)
}

// @Summary 仪表盘全部数据
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/dashboard/overview [get]
func (c *DashboardController) GetOverview(ctx *gin.Context) {
	overview, err := c.DashboardService.GetOverview(ctx.Request.Context())
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, overview)
}
