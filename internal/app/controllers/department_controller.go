package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/services"
	"github.com/yigit/campuslink/internal/middleware"
)

// DepartmentController handles department and semester operations
type DepartmentController struct {
	departmentService *services.DepartmentService
	semesterService   *services.SemesterService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService *services.DepartmentService, semesterService *services.SemesterService) *DepartmentController {
	return &DepartmentController{
		departmentService: departmentService,
		semesterService:   semesterService,
	}
}

// CreateDepartment creates a department together with its semesters
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	department, err := c.departmentService.CreateDepartment(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, department, "Department created")
}

// GetAllDepartments lists every department
func (c *DepartmentController) GetAllDepartments(ctx *gin.Context) {
	departments, err := c.departmentService.ListDepartments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, departments, "")
}

// GetDepartment retrieves a department by ID
func (c *DepartmentController) GetDepartment(ctx *gin.Context) {
	department, err := c.departmentService.GetDepartment(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, department, "")
}

// UpdateDepartment renames a department
func (c *DepartmentController) UpdateDepartment(ctx *gin.Context) {
	var req dto.UpdateDepartmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	department, err := c.departmentService.UpdateDepartment(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, department, "Department updated")
}

// DeleteDepartment removes a department with its semesters, teachers and students
func (c *DepartmentController) DeleteDepartment(ctx *gin.Context) {
	summary, err := c.departmentService.DeleteDepartment(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, summary, "Department deleted")
}

// CountDepartments returns the number of departments
func (c *DepartmentController) CountDepartments(ctx *gin.Context) {
	n, err := c.departmentService.CountDepartments(ctx)
	count(ctx, n, err)
}

// GetSemester retrieves a semester by ID
func (c *DepartmentController) GetSemester(ctx *gin.Context) {
	semester, err := c.semesterService.GetSemester(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, semester, "")
}

// GetSemestersByDepartment lists the semesters of a department in number order
func (c *DepartmentController) GetSemestersByDepartment(ctx *gin.Context) {
	semesters, err := c.semesterService.ListSemestersByDepartment(ctx, ctx.Param("deptId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, semesters, "")
}

// FindSemester resolves a semester by department and number
func (c *DepartmentController) FindSemester(ctx *gin.Context) {
	number, valid := intParam(ctx, "semnum")
	if !valid {
		return
	}
	semester, err := c.semesterService.FindSemester(ctx, ctx.Param("deptId"), number)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, semester, "")
}
