package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/services"
	"github.com/yigit/campuslink/internal/middleware"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
)

// AuthController handles logins and administrator accounts
type AuthController struct {
	authService  *services.AuthService
	adminService *services.AdminService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, adminService *services.AdminService) *AuthController {
	return &AuthController{
		authService:  authService,
		adminService: adminService,
	}
}

// Login verifies the credentials of an admin, teacher or student. The role is
// the last path segment.
func (c *AuthController) Login(ctx *gin.Context) {
	role, valid := models.ParseRole(ctx.Param("role"))
	if !valid {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Role must be one of admin, teacher, student"))
		return
	}

	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx, role, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, resp, "Login successful")
}

// CreateAdmin adds an administrator
func (c *AuthController) CreateAdmin(ctx *gin.Context) {
	var req dto.CreateAdminRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	admin, err := c.adminService.CreateAdmin(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, admin, "Admin created")
}

// GetAdmin retrieves an administrator
func (c *AuthController) GetAdmin(ctx *gin.Context) {
	admin, err := c.adminService.GetAdmin(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, admin, "")
}

// UpdateAdmin changes an administrator; an empty password keeps the current one
func (c *AuthController) UpdateAdmin(ctx *gin.Context) {
	var req dto.UpdateAdminRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	admin, err := c.adminService.UpdateAdmin(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, admin, "Admin updated")
}

// DeleteAdmin removes an administrator
func (c *AuthController) DeleteAdmin(ctx *gin.Context) {
	if err := c.adminService.DeleteAdmin(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Admin deleted")
}
