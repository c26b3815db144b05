package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/repositories"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
	"github.com/yigit/campuslink/internal/pkg/helpers"
)

// Announcement events published to live subscribers
const (
	EventAnnouncementCreated = "announcement.created"
	EventAnnouncementUpdated = "announcement.updated"
	EventAnnouncementDeleted = "announcement.deleted"
)

// AnnouncementNotifier receives announcement changes after they are stored
type AnnouncementNotifier interface {
	Notify(eventType string, data interface{})
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, interface{}) {}

// AnnouncementService handles notices shown to every user
type AnnouncementService struct {
	store    repositories.Store
	logger   zerolog.Logger
	now      func() time.Time
	notifier AnnouncementNotifier
}

// NewAnnouncementService creates a new announcement service instance
func NewAnnouncementService(store repositories.Store, logger zerolog.Logger, now func() time.Time) *AnnouncementService {
	return &AnnouncementService{store: store, logger: logger, now: now, notifier: noopNotifier{}}
}

// SetNotifier routes announcement changes to n
func (s *AnnouncementService) SetNotifier(n AnnouncementNotifier) {
	if n == nil {
		n = noopNotifier{}
	}
	s.notifier = n
}

// CreateAnnouncement posts an announcement stamped with the current local time
func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, req dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	content := strings.TrimSpace(req.Content)
	from := strings.TrimSpace(req.From)
	if content == "" || from == "" {
		return nil, apperrors.NewValidationError("Content and author are required")
	}

	announcement := &models.Announcement{
		ID:       newID(),
		Content:  content,
		From:     from,
		Datetime: helpers.FormatAnnouncementTime(s.now()),
	}
	if err := s.store.Announcements().Create(ctx, announcement); err != nil {
		return nil, internalError(err)
	}
	s.notifier.Notify(EventAnnouncementCreated, announcement)
	return announcement, nil
}

// ListAnnouncements returns one page of announcements, newest first, and the total count
func (s *AnnouncementService) ListAnnouncements(ctx context.Context, page, size int) ([]*models.Announcement, dto.PaginationInfo, error) {
	total, err := s.store.Announcements().Count(ctx)
	if err != nil {
		return nil, dto.PaginationInfo{}, internalError(err)
	}
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	items, err := s.store.Announcements().List(ctx, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, internalError(err)
	}
	return items, helpers.NewPaginationInfo(total, page, size), nil
}

// UpdateAnnouncement replaces the text of an announcement
func (s *AnnouncementService) UpdateAnnouncement(ctx context.Context, id string, req dto.UpdateAnnouncementRequest) (*models.Announcement, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewValidationError("Content is required")
	}
	announcement, err := s.store.Announcements().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Announcement not found", "")
	}
	announcement.Content = content
	if err := s.store.Announcements().Update(ctx, announcement); err != nil {
		return nil, storeError(err, "Announcement not found", "")
	}
	s.notifier.Notify(EventAnnouncementUpdated, announcement)
	return announcement, nil
}

// DeleteAnnouncement removes an announcement
func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, id string) error {
	if err := s.store.Announcements().Delete(ctx, id); err != nil {
		return storeError(err, "Announcement not found", "")
	}
	s.notifier.Notify(EventAnnouncementDeleted, map[string]string{"id": id})
	return nil
}
