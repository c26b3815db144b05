package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/repositories"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
)

const (
	msgSemesterNotFound = "Semester not found"
	msgScheduleNotFound = "Time schedule not found for the specified semester"
)

// MaxSlotsPerDay bounds how many periods a single day can hold
const MaxSlotsPerDay = 16

const msgTooManySlots = "A day can hold at most 16 slots"

// TimeScheduleService handles the weekly timetable of each semester
type TimeScheduleService struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewTimeScheduleService creates a new time schedule service instance
func NewTimeScheduleService(store repositories.Store, logger zerolog.Logger) *TimeScheduleService {
	return &TimeScheduleService{store: store, logger: logger}
}

// ApplySchedulePatch merges patch into w and returns the result. For every
// known day, a non-blank value overwrites the slot at its index and a null or
// blank value leaves it as is. Indexes past the end grow the day with free
// slots. Unknown days are ignored.
func ApplySchedulePatch(w models.WeekSchedule, patch map[string][]*string) models.WeekSchedule {
	out := w.Clone()
	for key, values := range patch {
		day, ok := models.ParseWeekday(strings.ToLower(strings.TrimSpace(key)))
		if !ok {
			continue
		}
		slots := out.Day(day)
		for i, v := range values {
			if v == nil || blank(*v) {
				continue
			}
			for len(*slots) <= i {
				*slots = append(*slots, "")
			}
			(*slots)[i] = strings.TrimSpace(*v)
		}
	}
	return out
}

// checkWeekSize rejects a timetable with an oversized day
func checkWeekSize(w models.WeekSchedule) error {
	for _, d := range models.Weekdays {
		if len(*w.Day(d)) > MaxSlotsPerDay {
			return apperrors.NewValidationError(msgTooManySlots)
		}
	}
	return nil
}

// checkPatchSize rejects a patch that would write past the last allowed slot.
// Null and blank values never grow a day, so only filled indexes count.
func checkPatchSize(patch map[string][]*string) error {
	for _, values := range patch {
		for i := len(values) - 1; i >= MaxSlotsPerDay; i-- {
			if v := values[i]; v != nil && !blank(*v) {
				return apperrors.NewValidationError(msgTooManySlots)
			}
		}
	}
	return nil
}

// CreateTimeSchedule adds the timetable of a semester; there can be only one
func (s *TimeScheduleService) CreateTimeSchedule(ctx context.Context, req dto.CreateTimeScheduleRequest) (*models.TimeSchedule, error) {
	if err := checkWeekSize(req.Schedule); err != nil {
		return nil, err
	}
	if _, err := s.store.Semesters().GetByID(ctx, req.SemesterID); err != nil {
		return nil, storeError(err, msgSemesterNotFound, "")
	}

	schedule := &models.TimeSchedule{
		ID:         newID(),
		SemesterID: req.SemesterID,
		Schedule:   req.Schedule.Clone(),
	}
	if err := s.store.TimeSchedules().Create(ctx, schedule); err != nil {
		return nil, storeError(err, msgScheduleNotFound, "Time schedule already exists for the specified semester")
	}
	return schedule, nil
}

// PatchTimeSchedule sparsely updates the timetable of a semester
func (s *TimeScheduleService) PatchTimeSchedule(ctx context.Context, semesterID string, patch map[string][]*string) (*models.TimeSchedule, error) {
	if patch == nil {
		return nil, apperrors.NewValidationError("Schedule is required")
	}
	if err := checkPatchSize(patch); err != nil {
		return nil, err
	}
	if _, err := s.store.Semesters().GetByID(ctx, semesterID); err != nil {
		return nil, storeError(err, msgSemesterNotFound, "")
	}

	var updated *models.TimeSchedule
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		current, err := tx.TimeSchedules().GetBySemester(ctx, semesterID)
		if err != nil {
			return err
		}
		current.Schedule = ApplySchedulePatch(current.Schedule, patch)
		if err := tx.TimeSchedules().Update(ctx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, storeError(err, msgScheduleNotFound, "")
	}
	return updated, nil
}

// GetTimeSchedule returns the timetable of a semester with every slot resolved
func (s *TimeScheduleService) GetTimeSchedule(ctx context.Context, semesterID string) (*dto.TimeScheduleView, error) {
	if _, err := s.store.Semesters().GetByID(ctx, semesterID); err != nil {
		return nil, storeError(err, msgSemesterNotFound, "")
	}
	schedule, err := s.store.TimeSchedules().GetBySemester(ctx, semesterID)
	if err != nil {
		return nil, storeError(err, msgScheduleNotFound, "")
	}

	papers, err := s.store.Papers().GetByIDs(ctx, scheduledPaperIDs(schedule.Schedule))
	if err != nil {
		return nil, internalError(err)
	}
	teacherIDs := make([]string, 0, len(papers))
	for _, p := range papers {
		teacherIDs = append(teacherIDs, p.TeacherID)
	}
	teachers, err := s.store.Teachers().GetByIDs(ctx, uniqueIDs(teacherIDs...))
	if err != nil {
		return nil, internalError(err)
	}

	view := JoinSchedule(
		schedule,
		indexByID(papers, func(p *models.Paper) string { return p.ID }),
		indexByID(teachers, func(t *models.Teacher) string { return t.ID }),
	)
	return &view, nil
}

// DeleteTimeSchedule removes the timetable of a semester
func (s *TimeScheduleService) DeleteTimeSchedule(ctx context.Context, semesterID string) error {
	if _, err := s.store.Semesters().GetByID(ctx, semesterID); err != nil {
		return storeError(err, msgSemesterNotFound, "")
	}
	if err := s.store.TimeSchedules().DeleteBySemester(ctx, semesterID); err != nil {
		return storeError(err, msgScheduleNotFound, "")
	}
	return nil
}
