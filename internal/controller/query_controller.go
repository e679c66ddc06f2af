package controller

import (
	"errors"
	"strconv"

	"kyra_advising_backend/internal/service"
	"kyra_advising_backend/internal/util"
	"kyra_advising_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QueryController struct {
	QueryService    *service.QueryService
	ProjectService  *service.ProjectService
	AdvisoryService *service.AdvisoryService
}

func NewQueryController(queryService *service.QueryService, projectService *service.ProjectService, advisoryService *service.AdvisoryService) *QueryController {
	return &QueryController{
		QueryService:    queryService,
		ProjectService:  projectService,
		AdvisoryService: advisoryService,
	}
}

// swagger:model AskRequest
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask godoc
// @Summary Submit a question to the advisory service
// @Description Resolves the student's project, forwards the question and
// @Description stores the exchange. Advisory failures degrade to an error
// @Description message stored as the response; the call itself succeeds.
// @Tags query
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AskRequest true "question"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /queries [post]
func (c *QueryController) Ask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	title, _, err := c.ProjectService.ResolveTitle(claims.Email, "")
	if err != nil {
		util.StorageError(ctx, err)
		return
	}

	timestamp := util.NowTimestamp()
	response, err := c.AdvisoryService.Ask(ctx.Request.Context(), claims.Email, req.Question, title)
	if err != nil {
		// Degrade to the category message; the exchange is still recorded.
		logger.Log.Error("advisory call failed", zap.Error(err))
		response = service.ErrorMessage(err)
	}

	if err := c.QueryService.SaveQuery(claims.Email, claims.Name, title, req.Question, response, timestamp, nil); err != nil {
		util.StorageError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"response":      response,
		"project_title": title,
		"timestamp":     timestamp,
	})
}

// swagger:model RateRequest
type RateRequest struct {
	Timestamp string `json:"timestamp" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
}

// Rate godoc
// @Summary Attach a feedback rating to one of the caller's queries
// @Tags query
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RateRequest true "timestamp of the query and rating 1-5"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "query not found"
// @Router /queries/rating [post]
func (c *QueryController) Rate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.QueryService.RateQuery(claims.Email, req.Timestamp, req.Rating); err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidRating):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrQueryNotFound):
			util.NotFound(ctx, "Query not found.")
		default:
			util.StorageError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "Feedback submitted!"})
}

// History godoc
// @Summary Paginated query history for the calling student
// @Tags query
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page (default 1)"
// @Param limit query int false "page size (default 5)"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /queries/history [get]
func (c *QueryController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page := intQuery(ctx, "page", 1)
	limit := intQuery(ctx, "limit", 5)

	queries, total, err := c.QueryService.History(claims.Email, page, limit)
	if err != nil {
		util.StorageError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  queries,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func intQuery(ctx *gin.Context, key string, fallback int) int {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
