package controller

import (
	"kyra_advising_backend/internal/service"
	"kyra_advising_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// Stats godoc
// @Summary Portal activity summary (admin)
// @Description Student, project and query counts plus the average feedback
// @Description rating across all rated queries.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.DashboardStats}
// @Router /admin/dashboard [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	stats, err := c.DashboardService.Stats(ctx.Request.Context())
	if err != nil {
		util.StorageError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
