package controller

import (
	"errors"

	"kyra_advising_backend/internal/service"
	"kyra_advising_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	ProjectService *service.ProjectService
}

func NewProjectController(projectService *service.ProjectService) *ProjectController {
	return &ProjectController{ProjectService: projectService}
}

// swagger:model SubmitProjectRequest
type SubmitProjectRequest struct {
	ProjectTitle string `json:"project_title" binding:"required"`
}

// SubmitProject godoc
// @Summary Submit a project title
// @Description Records the project and makes it the student's current assignment
// @Tags project
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitProjectRequest true "project title"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /projects [post]
func (c *ProjectController) SubmitProject(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProjectService.SaveProject(claims.Email, req.ProjectTitle); err != nil {
		if errors.Is(err, util.ErrInvalidEmail) {
			util.BadRequest(ctx, "Please enter a valid email address.")
		} else {
			util.StorageError(ctx, err)
		}
		return
	}
	util.Created(ctx, gin.H{"message": "Project saved successfully."})
}

// MyProjects godoc
// @Summary Project submission history for the current student
// @Tags project
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Project}
// @Router /projects/mine [get]
func (c *ProjectController) MyProjects(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	projects, err := c.ProjectService.UserProjects(claims.Email)
	if err != nil {
		util.StorageError(ctx, err)
		return
	}
	util.Success(ctx, projects)
}

// CurrentProject godoc
// @Summary Current project assignment for the calling student
// @Tags project
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Router /projects/current [get]
func (c *ProjectController) CurrentProject(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	title, assigned, err := c.ProjectService.TitleForStudent(claims.Email)
	if err != nil {
		util.StorageError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"project_title": title,
		"assigned":      assigned,
	})
}

// AvailableProjects godoc
// @Summary Distinct sorted list of all mapped project titles (admin)
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]string}
// @Router /admin/projects [get]
func (c *ProjectController) AvailableProjects(ctx *gin.Context) {
	projects, err := c.ProjectService.AvailableProjects()
	if err != nil {
		util.StorageError(ctx, err)
		return
	}
	util.Success(ctx, projects)
}

// ImportMappings godoc
// @Summary Bulk-import student to project mappings from CSV (admin)
// @Description CSV header must contain student_id and project_title.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /admin/mappings [post]
func (c *ProjectController) ImportMappings(ctx *gin.Context) {
	data, ok := readUploadedFile(ctx)
	if !ok {
		return
	}

	processed, err := c.ProjectService.ImportMappings(data)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"mappings_saved": processed})
}
