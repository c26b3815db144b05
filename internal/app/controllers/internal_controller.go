package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/services"
	"github.com/yigit/campuslink/internal/middleware"
)

// InternalController handles internal exam marks
type InternalController struct {
	internalService *services.InternalService
}

// NewInternalController creates a new InternalController
func NewInternalController(internalService *services.InternalService) *InternalController {
	return &InternalController{internalService: internalService}
}

func (c *InternalController) CreateInternal(ctx *gin.Context) {
	var req dto.InternalMarksRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	internal, err := c.internalService.CreateInternal(ctx, ctx.Param("paperId"), req.Marks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, internal, "Internal record created")
}

// ReplaceInternalMarks swaps the whole mark list
func (c *InternalController) ReplaceInternalMarks(ctx *gin.Context) {
	var req dto.InternalMarksRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	internal, err := c.internalService.ReplaceInternalMarks(ctx, ctx.Param("paperId"), req.Marks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, internal, "Internal record updated")
}

func (c *InternalController) GetInternalByPaper(ctx *gin.Context) {
	internal, err := c.internalService.GetInternalByPaper(ctx, ctx.Param("paperId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, internal, "")
}

func (c *InternalController) GetInternalsByStudent(ctx *gin.Context) {
	internals, err := c.internalService.ListInternalsByStudent(ctx, ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, internals, "")
}

func (c *InternalController) DeleteInternal(ctx *gin.Context) {
	if err := c.internalService.DeleteInternal(ctx, ctx.Param("paperId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Internal record deleted")
}
