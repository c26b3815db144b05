package services

import (
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
)

// The functions below build read projections from base records and the
// records they reference. They never touch the store. A reference that cannot
// be resolved projects to nil.

// indexByID maps records by their id
func indexByID[T any](records []*T, id func(*T) string) map[string]*T {
	index := make(map[string]*T, len(records))
	for _, r := range records {
		index[id(r)] = r
	}
	return index
}

// uniqueIDs returns the distinct non-empty ids in order of first appearance
func uniqueIDs(ids ...string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func departmentRef(id string, departments map[string]*models.Department) *dto.DepartmentRef {
	d, ok := departments[id]
	if !ok {
		return nil
	}
	return &dto.DepartmentRef{ID: d.ID, Name: d.Name}
}

func semesterRef(id string, semesters map[string]*models.Semester) *dto.SemesterRef {
	s, ok := semesters[id]
	if !ok {
		return nil
	}
	return &dto.SemesterRef{ID: s.ID, Number: s.Number}
}

func teacherRef(id string, teachers map[string]*models.Teacher) *dto.TeacherRef {
	t, ok := teachers[id]
	if !ok {
		return nil
	}
	return &dto.TeacherRef{ID: t.ID, Name: t.Name}
}

// JoinTeachers resolves the department of each teacher
func JoinTeachers(teachers []*models.Teacher, departments map[string]*models.Department) []dto.TeacherView {
	views := make([]dto.TeacherView, 0, len(teachers))
	for _, t := range teachers {
		views = append(views, dto.TeacherView{
			ID:         t.ID,
			Name:       t.Name,
			Email:      t.Email,
			Username:   t.Username,
			Department: departmentRef(t.DepartmentID, departments),
		})
	}
	return views
}

// JoinStudents resolves semester number and department name of each student
func JoinStudents(
	students []*models.Student,
	semesters map[string]*models.Semester,
	departments map[string]*models.Department,
) []dto.StudentView {
	views := make([]dto.StudentView, 0, len(students))
	for _, s := range students {
		views = append(views, dto.StudentView{
			ID:          s.ID,
			Name:        s.Name,
			AdmissionNo: s.AdmissionNo,
			RollNo:      s.RollNo,
			Email:       s.Email,
			Username:    s.Username,
			Semester:    semesterRef(s.SemesterID, semesters),
			Department:  departmentRef(s.DepartmentID, departments),
		})
	}
	return views
}

// JoinPapers resolves semester number, department name and teacher name of each paper
func JoinPapers(
	papers []*models.Paper,
	semesters map[string]*models.Semester,
	departments map[string]*models.Department,
	teachers map[string]*models.Teacher,
) []dto.PaperView {
	views := make([]dto.PaperView, 0, len(papers))
	for _, p := range papers {
		views = append(views, dto.PaperView{
			ID:         p.ID,
			Code:       p.Code,
			Title:      p.Title,
			Semester:   semesterRef(p.SemesterID, semesters),
			Department: departmentRef(p.DepartmentID, departments),
			Teacher:    teacherRef(p.TeacherID, teachers),
		})
	}
	return views
}

// StudentBriefs projects students to {id, rollNo, name}
func StudentBriefs(students []*models.Student) []dto.StudentBrief {
	briefs := make([]dto.StudentBrief, 0, len(students))
	for _, s := range students {
		briefs = append(briefs, dto.StudentBrief{ID: s.ID, RollNo: s.RollNo, Name: s.Name})
	}
	return briefs
}

// JoinSchedule resolves every slot of a timetable to its paper and teacher.
// Free and unknown slots stay in place as nil.
func JoinSchedule(
	ts *models.TimeSchedule,
	papers map[string]*models.Paper,
	teachers map[string]*models.Teacher,
) dto.TimeScheduleView {
	day := func(slots []string) []*dto.SlotView {
		out := make([]*dto.SlotView, len(slots))
		for i, id := range slots {
			p, ok := papers[id]
			if !ok {
				continue
			}
			out[i] = &dto.SlotView{
				PaperID: p.ID,
				Code:    p.Code,
				Title:   p.Title,
				Teacher: teacherRef(p.TeacherID, teachers),
			}
		}
		return out
	}
	w := ts.Schedule
	return dto.TimeScheduleView{
		ID:         ts.ID,
		SemesterID: ts.SemesterID,
		Schedule: dto.WeekScheduleView{
			Monday:    day(w.Monday),
			Tuesday:   day(w.Tuesday),
			Wednesday: day(w.Wednesday),
			Thursday:  day(w.Thursday),
			Friday:    day(w.Friday),
		},
	}
}

// scheduledPaperIDs lists the distinct paper ids used anywhere in a timetable
func scheduledPaperIDs(w models.WeekSchedule) []string {
	var ids []string
	for _, d := range models.Weekdays {
		ids = append(ids, *w.Day(d)...)
	}
	return uniqueIDs(ids...)
}

// JoinInternal resolves the paper and the students of an internal record
func JoinInternal(
	in *models.Internal,
	papers map[string]*models.Paper,
	students map[string]*models.Student,
) dto.InternalView {
	view := dto.InternalView{ID: in.ID, Marks: make([]dto.MarkView, 0, len(in.Marks))}
	if p, ok := papers[in.PaperID]; ok {
		view.Paper = &dto.PaperRef{ID: p.ID, Code: p.Code, Title: p.Title}
	}
	for _, m := range in.Marks {
		mv := dto.MarkView{StudentID: m.StudentID, Mark: m.Mark}
		if s, ok := students[m.StudentID]; ok {
			mv.Student = &dto.StudentBrief{ID: s.ID, RollNo: s.RollNo, Name: s.Name}
		}
		view.Marks = append(view.Marks, mv)
	}
	return view
}
