package controller

import (
	"errors"
	"io"
	"net/http"

	"kyra_advising_backend/internal/model"
	"kyra_advising_backend/internal/service"
	"kyra_advising_backend/internal/util"
	"kyra_advising_backend/pkg/database"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password"`
}

// UpdateProfile godoc
// @Summary Update own name, optionally set a new password
// @Tags user
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpdateProfileRequest true "profile fields"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SaveUser(claims.Email, req.Name, req.Password, claims.Role); err != nil {
		c.mapSaveError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "User saved successfully."})
}

// swagger:model RegisterUserRequest
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=student admin"`
	Password string `json:"password" binding:"required"`
}

// RegisterUser godoc
// @Summary Register or replace a user (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RegisterUserRequest true "user fields"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /admin/users [post]
func (c *UserController) RegisterUser(ctx *gin.Context) {
	var req RegisterUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SaveUser(req.Email, req.Name, req.Password, model.UserRole(req.Role)); err != nil {
		c.mapSaveError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"email": req.Email})
}

// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ResetPassword godoc
// @Summary Reset a user's password (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ResetPasswordRequest true "target user and new password"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "user not found"
// @Router /admin/users/reset-password [post]
func (c *UserController) ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.ResetPassword(req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, "User not found.")
		case errors.Is(err, util.ErrInvalidEmail):
			util.BadRequest(ctx, "Please enter a valid email address.")
		default:
			util.StorageError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "Password reset successfully."})
}

// DeleteUser godoc
// @Summary Delete a user and all related rows (admin)
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param email path string true "user email"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "user not found"
// @Router /admin/users/{email} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	email := ctx.Param("email")

	if err := c.UserService.DeleteUser(email); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "User not found.")
		} else {
			util.StorageError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "User deleted successfully."})
}

// ListStudents godoc
// @Summary List student accounts (admin)
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /admin/students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	students, err := c.UserService.ListStudents()
	if err != nil {
		util.StorageError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// BulkRegister godoc
// @Summary Bulk-register users from a CSV upload (admin)
// @Description CSV header must contain email, name and role; the first
// @Description invalid row aborts the whole batch.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /admin/users/bulk [post]
func (c *UserController) BulkRegister(ctx *gin.Context) {
	data, ok := readUploadedFile(ctx)
	if !ok {
		return
	}

	added, err := c.UserService.BulkRegister(data, database.DefaultPassword)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"users_added": added})
}

func (c *UserController) mapSaveError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidEmail):
		util.BadRequest(ctx, "Please enter a valid email address.")
	case errors.Is(err, util.ErrInvalidRole):
		util.BadRequest(ctx, "Role must be student or admin.")
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx, "User not found.")
	default:
		util.StorageError(ctx, err)
	}
}

// readUploadedFile pulls the "file" form field into memory.
func readUploadedFile(ctx *gin.Context) ([]byte, bool) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file upload")
		return nil, false
	}
	f, err := fileHeader.Open()
	if err != nil {
		util.Error(ctx, http.StatusInternalServerError, "failed to read upload")
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		util.Error(ctx, http.StatusInternalServerError, "failed to read upload")
		return nil, false
	}
	return data, true
}
