package dto

import "github.com/yigit/campuslink/internal/app/models"

// CreateTimeScheduleRequest represents the request to add a semester timetable
type CreateTimeScheduleRequest struct {
	SemesterID string              `json:"semesterId" binding:"required,uuid"`
	Schedule   models.WeekSchedule `json:"schedule"`
}

// PatchTimeScheduleRequest holds per-day slot values. A null or blank value
// leaves the slot untouched.
type PatchTimeScheduleRequest struct {
	Schedule map[string][]*string `json:"schedule" binding:"required"`
}

// SlotView is one resolved timetable slot
type SlotView struct {
	PaperID string      `json:"paperId"`
	Code    string      `json:"code"`
	Title   string      `json:"title"`
	Teacher *TeacherRef `json:"teacher"`
}

// WeekScheduleView mirrors models.WeekSchedule with resolved slots.
// Free or unknown slots are null and keep their position.
type WeekScheduleView struct {
	Monday    []*SlotView `json:"monday"`
	Tuesday   []*SlotView `json:"tuesday"`
	Wednesday []*SlotView `json:"wednesday"`
	Thursday  []*SlotView `json:"thursday"`
	Friday    []*SlotView `json:"friday"`
}

// TimeScheduleView is the timetable of a semester
type TimeScheduleView struct {
	ID         string           `json:"id"`
	SemesterID string           `json:"semesterId"`
	Schedule   WeekScheduleView `json:"schedule"`
}
