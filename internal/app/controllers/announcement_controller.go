package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/services"
	"github.com/yigit/campuslink/internal/middleware"
	"github.com/yigit/campuslink/internal/pkg/helpers"
)

// AnnouncementController handles announcements
type AnnouncementController struct {
	announcementService *services.AnnouncementService
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementService *services.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{announcementService: announcementService}
}

// CreateAnnouncement posts an announcement
func (c *AnnouncementController) CreateAnnouncement(ctx *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	announcement, err := c.announcementService.CreateAnnouncement(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, announcement, "Announcement created")
}

// GetAnnouncements returns one page of announcements, newest first.
// Query parameters: page (1-based), size.
func (c *AnnouncementController) GetAnnouncements(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	items, pagination, err := c.announcementService.ListAnnouncements(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.PaginatedResponse{Items: items, Pagination: pagination}, "")
}

// UpdateAnnouncement replaces the text of an announcement
func (c *AnnouncementController) UpdateAnnouncement(ctx *gin.Context) {
	var req dto.UpdateAnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	announcement, err := c.announcementService.UpdateAnnouncement(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, announcement, "Announcement updated")
}

// DeleteAnnouncement removes an announcement
func (c *AnnouncementController) DeleteAnnouncement(ctx *gin.Context) {
	if err := c.announcementService.DeleteAnnouncement(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Announcement deleted")
}
