package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/services"
	"github.com/yigit/campuslink/internal/middleware"
)

// PaperController handles papers (courses)
type PaperController struct {
	paperService *services.PaperService
}

// NewPaperController creates a new PaperController
func NewPaperController(paperService *services.PaperService) *PaperController {
	return &PaperController{paperService: paperService}
}

// CreatePaper creates a paper
func (c *PaperController) CreatePaper(ctx *gin.Context) {
	var req dto.CreatePaperRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	paper, err := c.paperService.CreatePaper(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, paper, "Paper created")
}

// GetAllPapers lists every paper
func (c *PaperController) GetAllPapers(ctx *gin.Context) {
	papers, err := c.paperService.ListPapers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, papers, "")
}

// GetPaper retrieves a paper by ID
func (c *PaperController) GetPaper(ctx *gin.Context) {
	paper, err := c.paperService.GetPaper(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, paper, "")
}

// UpdatePaper applies a partial update
func (c *PaperController) UpdatePaper(ctx *gin.Context) {
	var req dto.UpdatePaperRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	paper, err := c.paperService.UpdatePaper(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, paper, "Paper updated")
}

// DeletePaper removes a paper and returns it
func (c *PaperController) DeletePaper(ctx *gin.Context) {
	paper, err := c.paperService.DeletePaper(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, paper, "Paper deleted")
}

// CountPapers returns the number of papers
func (c *PaperController) CountPapers(ctx *gin.Context) {
	n, err := c.paperService.CountPapers(ctx)
	count(ctx, n, err)
}

// GetPapersByDepartment lists the papers of a department
func (c *PaperController) GetPapersByDepartment(ctx *gin.Context) {
	papers, err := c.paperService.ListPapersByDepartment(ctx, ctx.Param("departmentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, papers, "")
}

// GetPapersBySemester lists the papers of a semester
func (c *PaperController) GetPapersBySemester(ctx *gin.Context) {
	papers, err := c.paperService.ListPapersBySemester(ctx, ctx.Param("semesterId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, papers, "")
}

// GetStudentsInPaper lists the students enrolled in the paper's semester
func (c *PaperController) GetStudentsInPaper(ctx *gin.Context) {
	students, err := c.paperService.ListStudentsInPaper(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, students, "")
}
