package controller

import (
	"fmt"
	"net/http"
	"time"

	"kyra_advising_backend/internal/model"
	"kyra_advising_backend/internal/repository"
	"kyra_advising_backend/internal/service"
	"kyra_advising_backend/internal/util"
	"kyra_advising_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExportController struct {
	ExportService  *service.ExportService
	StorageService *service.StorageService
}

func NewExportController(exportService *service.ExportService, storageService *service.StorageService) *ExportController {
	return &ExportController{
		ExportService:  exportService,
		StorageService: storageService,
	}
}

// filterFromRequest builds the log filter from query parameters. Students
// only ever see their own rows, whatever email they pass.
func filterFromRequest(ctx *gin.Context) (repository.QueryLogFilter, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return repository.QueryLogFilter{}, false
	}

	f := repository.QueryLogFilter{
		StudentEmail: ctx.Query("student_email"),
		ProjectTitle: ctx.Query("project_title"),
		DateFrom:     ctx.Query("date_from"),
		DateTo:       ctx.Query("date_to"),
	}
	if claims.Role != model.Admin {
		f.StudentEmail = claims.Email
	}
	return f, true
}

// ExportCSV godoc
// @Summary Download the filtered query log as CSV
// @Description Optional filters: student_email, project_title ("All Projects"
// @Description means no filter), date_from and date_to (YYYY-MM-DD). Students
// @Description are always restricted to their own rows.
// @Tags export
// @Produce text/csv
// @Security ApiKeyAuth
// @Param student_email query string false "filter by student email (admin)"
// @Param project_title query string false "filter by project title"
// @Param date_from query string false "inclusive lower date bound"
// @Param date_to query string false "inclusive upper date bound"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} util.Response "no rows match"
// @Router /export/csv [get]
func (c *ExportController) ExportCSV(ctx *gin.Context) {
	f, ok := filterFromRequest(ctx)
	if !ok {
		return
	}

	data, err := c.ExportService.ExportCSV(f)
	if err != nil {
		util.StorageError(ctx, err)
		return
	}
	if data == nil {
		util.NotFound(ctx, "No query logs found for the selected filters.")
		return
	}

	filename := exportFilename("csv")
	c.archive(ctx, filename, data, "text/csv")

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv", data)
}

// ExportPDF godoc
// @Summary Download the filtered query log as a PDF report
// @Description Same filters as the CSV export.
// @Tags export
// @Produce application/pdf
// @Security ApiKeyAuth
// @Param student_email query string false "filter by student email (admin)"
// @Param project_title query string false "filter by project title"
// @Param date_from query string false "inclusive lower date bound"
// @Param date_to query string false "inclusive upper date bound"
// @Success 200 {string} string "PDF payload"
// @Failure 404 {object} util.Response "no rows match"
// @Router /export/pdf [get]
func (c *ExportController) ExportPDF(ctx *gin.Context) {
	f, ok := filterFromRequest(ctx)
	if !ok {
		return
	}

	data, err := c.ExportService.ExportPDF(f)
	if err != nil {
		util.StorageError(ctx, err)
		return
	}
	if data == nil {
		util.NotFound(ctx, "No query logs found for the selected filters.")
		return
	}

	filename := exportFilename("pdf")
	c.archive(ctx, filename, data, "application/pdf")

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/pdf", data)
}

func (c *ExportController) archive(ctx *gin.Context, filename string, data []byte, contentType string) {
	location, err := c.StorageService.Archive(ctx.Request.Context(), filename, data, contentType)
	if err != nil {
		// Archiving is best effort; the download still goes out.
		logger.Log.Warn("export archive failed", zap.String("filename", filename), zap.Error(err))
		return
	}
	if location != "" {
		logger.Log.Info("export archived", zap.String("location", location))
	}
}

func exportFilename(ext string) string {
	return fmt.Sprintf("query_logs_%s.%s", time.Now().Format("20060102_150405"), ext)
}
