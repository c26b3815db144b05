package models

// Weekday is a teaching day key as used in schedule payloads
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
)

// Weekdays lists the teaching days in order
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// ParseWeekday reports whether s names a teaching day
func ParseWeekday(s string) (Weekday, bool) {
	for _, d := range Weekdays {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// WeekSchedule holds, per weekday, the ordered paper ids of each slot.
// An empty string marks a free slot.
type WeekSchedule struct {
	Monday    []string `json:"monday"`
	Tuesday   []string `json:"tuesday"`
	Wednesday []string `json:"wednesday"`
	Thursday  []string `json:"thursday"`
	Friday    []string `json:"friday"`
}

// Day returns a pointer to the slot list of d
func (w *WeekSchedule) Day(d Weekday) *[]string {
	switch d {
	case Monday:
		return &w.Monday
	case Tuesday:
		return &w.Tuesday
	case Wednesday:
		return &w.Wednesday
	case Thursday:
		return &w.Thursday
	case Friday:
		return &w.Friday
	}
	return nil
}

// Clone returns a deep copy
func (w WeekSchedule) Clone() WeekSchedule {
	cp := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return append([]string(nil), s...)
	}
	return WeekSchedule{
		Monday:    cp(w.Monday),
		Tuesday:   cp(w.Tuesday),
		Wednesday: cp(w.Wednesday),
		Thursday:  cp(w.Thursday),
		Friday:    cp(w.Friday),
	}
}

// TimeSchedule is the weekly timetable of one semester
type TimeSchedule struct {
	ID         string       `json:"id" db:"id"`
	SemesterID string       `json:"semesterId" db:"semester_id"`
	Schedule   WeekSchedule `json:"schedule"`
}
