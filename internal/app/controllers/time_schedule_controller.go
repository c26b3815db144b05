package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/services"
	"github.com/yigit/campuslink/internal/middleware"
)

// TimeScheduleController handles semester timetables
type TimeScheduleController struct {
	scheduleService *services.TimeScheduleService
}

// NewTimeScheduleController creates a new TimeScheduleController
func NewTimeScheduleController(scheduleService *services.TimeScheduleService) *TimeScheduleController {
	return &TimeScheduleController{scheduleService: scheduleService}
}

// CreateTimeSchedule adds the timetable of a semester
func (c *TimeScheduleController) CreateTimeSchedule(ctx *gin.Context) {
	var req dto.CreateTimeScheduleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	schedule, err := c.scheduleService.CreateTimeSchedule(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, schedule, "Time schedule created")
}

// GetTimeSchedule returns the resolved timetable of a semester
func (c *TimeScheduleController) GetTimeSchedule(ctx *gin.Context) {
	schedule, err := c.scheduleService.GetTimeSchedule(ctx, ctx.Param("semesterId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, schedule, "")
}

// PatchTimeSchedule overwrites the given slots and keeps the rest.
// Null or empty values leave their slot unchanged.
func (c *TimeScheduleController) PatchTimeSchedule(ctx *gin.Context) {
	var req dto.PatchTimeScheduleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	schedule, err := c.scheduleService.PatchTimeSchedule(ctx, ctx.Param("semesterId"), req.Schedule)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, schedule, "Time schedule updated")
}

// DeleteTimeSchedule removes the timetable of a semester
func (c *TimeScheduleController) DeleteTimeSchedule(ctx *gin.Context) {
	if err := c.scheduleService.DeleteTimeSchedule(ctx, ctx.Param("semesterId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Time schedule deleted")
}
