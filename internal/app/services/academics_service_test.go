package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/repositories/memory"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
	"github.com/yigit/campuslink/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func mustPaper(t *testing.T, svc *Services, code, departmentID, teacherID string, semnum int) *dto.PaperView {
	t.Helper()
	p, err := svc.Paper.CreatePaper(context.Background(), dto.CreatePaperRequest{
		Code: code, Title: "Paper " + code, Semnum: semnum, DepartmentID: departmentID, TeacherID: teacherID,
	})
	if err != nil {
		t.Fatalf("CreatePaper(%s): %v", code, err)
	}
	return p
}

func TestCreatePaperBindsFirstSemesterWithNumber(t *testing.T) {
	svc, _ := newTestServices(t)
	cs := mustDepartment(t, svc, "CS", 2)
	ee := mustDepartment(t, svc, "EE", 2)
	grace := mustTeacher(t, svc, "grace", ee.ID)

	paper := mustPaper(t, svc, "EE101", ee.ID, grace.ID, 1)
	csSem1 := semesterOf(t, svc, cs.ID, 1)
	if paper.Semester == nil || paper.Semester.ID != csSem1.ID {
		t.Errorf("paper semester = %+v, want first created semester %s", paper.Semester, csSem1.ID)
	}
	if paper.Department.Name != "EE" || paper.Teacher.ID != grace.ID {
		t.Errorf("paper refs = %+v / %+v", paper.Department, paper.Teacher)
	}
}

func TestCreatePaperErrors(t *testing.T) {
	svc, _ := newTestServices(t)
	cs := mustDepartment(t, svc, "CS", 2)
	grace := mustTeacher(t, svc, "grace", cs.ID)
	mustPaper(t, svc, "CS101", cs.ID, grace.ID, 1)

	tests := []struct {
		name string
		req  dto.CreatePaperRequest
		kind error
	}{
		{"duplicate code", dto.CreatePaperRequest{Code: "CS101", Title: "Again", Semnum: 1, DepartmentID: cs.ID, TeacherID: grace.ID}, errConflict},
		{"no semester with number", dto.CreatePaperRequest{Code: "CS901", Title: "X", Semnum: 9, DepartmentID: cs.ID, TeacherID: grace.ID}, errRelationship},
		{"unknown department", dto.CreatePaperRequest{Code: "CS102", Title: "X", Semnum: 1, DepartmentID: "missing", TeacherID: grace.ID}, errNotFound},
		{"unknown teacher", dto.CreatePaperRequest{Code: "CS103", Title: "X", Semnum: 1, DepartmentID: cs.ID, TeacherID: "missing"}, errNotFound},
		{"blank title", dto.CreatePaperRequest{Code: "CS104", Title: " ", Semnum: 1, DepartmentID: cs.ID, TeacherID: grace.ID}, errValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Paper.CreatePaper(context.Background(), tt.req)
			assertKind(t, err, tt.kind)
		})
	}
}

func TestUpdateAndDeletePaper(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	cs := mustDepartment(t, svc, "CS", 3)
	grace := mustTeacher(t, svc, "grace", cs.ID)
	mustPaper(t, svc, "CS101", cs.ID, grace.ID, 1)
	sys := mustPaper(t, svc, "CS301", cs.ID, grace.ID, 3)

	_, err := svc.Paper.UpdatePaper(ctx, sys.ID, dto.UpdatePaperRequest{Code: ptr("CS101")})
	assertKind(t, err, errConflict)
	_, err = svc.Paper.UpdatePaper(ctx, sys.ID, dto.UpdatePaperRequest{SemesterID: ptr("missing")})
	assertKind(t, err, errNotFound)

	sem2 := semesterOf(t, svc, cs.ID, 2)
	updated, err := svc.Paper.UpdatePaper(ctx, sys.ID, dto.UpdatePaperRequest{Title: ptr("Systems"), SemesterID: ptr(sem2.ID)})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Systems" || updated.Semester.Number != 2 || updated.Code != "CS301" {
		t.Errorf("updated paper = %+v", updated)
	}

	deleted, err := svc.Paper.DeletePaper(ctx, sys.ID)
	if err != nil || deleted.ID != sys.ID {
		t.Fatalf("DeletePaper = %+v, %v", deleted, err)
	}
	_, err = svc.Paper.DeletePaper(ctx, sys.ID)
	assertKind(t, err, errNotFound)
}

func TestPaperListings(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	cs := mustDepartment(t, svc, "CS", 2)
	grace := mustTeacher(t, svc, "grace", cs.ID)
	p := mustPaper(t, svc, "CS101", cs.ID, grace.ID, 1)
	mustPaper(t, svc, "CS201", cs.ID, grace.ID, 2)
	alan := mustStudent(t, svc, "alan", cs.ID, 1)
	mustStudent(t, svc, "ada", cs.ID, 2)

	byDept, err := svc.Paper.ListPapersByDepartment(ctx, cs.ID)
	if err != nil || len(byDept) != 2 {
		t.Errorf("ListPapersByDepartment = %d, %v", len(byDept), err)
	}
	bySem, err := svc.Paper.ListPapersBySemester(ctx, p.Semester.ID)
	if err != nil || len(bySem) != 1 || bySem[0].Code != "CS101" {
		t.Errorf("ListPapersBySemester = %+v, %v", bySem, err)
	}

	roster, err := svc.Paper.ListStudentsInPaper(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []dto.StudentBrief{{ID: alan.ID, RollNo: 1, Name: "Student alan"}}
	if !reflect.DeepEqual(roster, want) {
		t.Errorf("roster = %+v, want %+v", roster, want)
	}

	if n, err := svc.Paper.CountPapers(ctx); err != nil || n != 2 {
		t.Errorf("CountPapers = %d, %v", n, err)
	}
}

func TestApplySchedulePatch(t *testing.T) {
	base := models.WeekSchedule{Monday: []string{"P1", "P2", "P3"}, Tuesday: []string{"P4"}}

	tests := []struct {
		name  string
		patch map[string][]*string
		want  models.WeekSchedule
	}{
		{
			name:  "blank and null values keep slots",
			patch: map[string][]*string{"monday": {ptr(""), ptr("P9"), nil}},
			want:  models.WeekSchedule{Monday: []string{"P1", "P9", "P3"}, Tuesday: []string{"P4"}},
		},
		{
			name:  "index past the end grows the day",
			patch: map[string][]*string{"tuesday": {nil, nil, ptr("P5")}},
			want:  models.WeekSchedule{Monday: []string{"P1", "P2", "P3"}, Tuesday: []string{"P4", "", "P5"}},
		},
		{
			name:  "day keys are case insensitive",
			patch: map[string][]*string{"Friday": {ptr("P6")}},
			want:  models.WeekSchedule{Monday: []string{"P1", "P2", "P3"}, Tuesday: []string{"P4"}, Friday: []string{"P6"}},
		},
		{
			name:  "unknown day is ignored",
			patch: map[string][]*string{"sunday": {ptr("P7")}},
			want:  models.WeekSchedule{Monday: []string{"P1", "P2", "P3"}, Tuesday: []string{"P4"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplySchedulePatch(base, tt.patch)
			if !reflect.DeepEqual(got, tt.want.Clone()) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
	if !reflect.DeepEqual(base.Monday, []string{"P1", "P2", "P3"}) {
		t.Errorf("input schedule was modified: %v", base.Monday)
	}
}

func TestTimeScheduleLifecycle(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	cs := mustDepartment(t, svc, "CS", 1)
	grace := mustTeacher(t, svc, "grace", cs.ID)
	p := mustPaper(t, svc, "CS101", cs.ID, grace.ID, 1)
	sem := semesterOf(t, svc, cs.ID, 1)

	_, err := svc.TimeSchedule.PatchTimeSchedule(ctx, sem.ID, map[string][]*string{"monday": {ptr(p.ID)}})
	assertKind(t, err, errNotFound)

	req := dto.CreateTimeScheduleRequest{SemesterID: sem.ID, Schedule: models.WeekSchedule{Monday: []string{"", p.ID}}}
	if _, err := svc.TimeSchedule.CreateTimeSchedule(ctx, req); err != nil {
		t.Fatal(err)
	}
	_, err = svc.TimeSchedule.CreateTimeSchedule(ctx, req)
	assertKind(t, err, errConflict)

	_, err = svc.TimeSchedule.CreateTimeSchedule(ctx, dto.CreateTimeScheduleRequest{SemesterID: "missing"})
	assertKind(t, err, errNotFound)

	patched, err := svc.TimeSchedule.PatchTimeSchedule(ctx, sem.ID, map[string][]*string{"wednesday": {nil, ptr(p.ID)}})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(patched.Schedule.Wednesday, []string{"", p.ID}) || len(patched.Schedule.Monday) != 2 {
		t.Errorf("patched schedule = %+v", patched.Schedule)
	}

	view, err := svc.TimeSchedule.GetTimeSchedule(ctx, sem.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Schedule.Monday) != 2 || view.Schedule.Monday[0] != nil {
		t.Fatalf("monday view = %+v", view.Schedule.Monday)
	}
	slot := view.Schedule.Monday[1]
	if slot == nil || slot.Code != "CS101" || slot.Teacher == nil || slot.Teacher.ID != grace.ID {
		t.Errorf("resolved slot = %+v", slot)
	}

	if err := svc.TimeSchedule.DeleteTimeSchedule(ctx, sem.ID); err != nil {
		t.Fatal(err)
	}
	_, err = svc.TimeSchedule.GetTimeSchedule(ctx, sem.ID)
	assertKind(t, err, errNotFound)
}

func TestTimeScheduleSlotLimit(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	cs := mustDepartment(t, svc, "CS", 1)
	grace := mustTeacher(t, svc, "grace", cs.ID)
	p := mustPaper(t, svc, "CS101", cs.ID, grace.ID, 1)
	sem := semesterOf(t, svc, cs.ID, 1)

	full := make([]string, MaxSlotsPerDay+1)
	_, err := svc.TimeSchedule.CreateTimeSchedule(ctx, dto.CreateTimeScheduleRequest{SemesterID: sem.ID, Schedule: models.WeekSchedule{Thursday: full}})
	assertKind(t, err, errValidation)

	if _, err := svc.TimeSchedule.CreateTimeSchedule(ctx, dto.CreateTimeScheduleRequest{SemesterID: sem.ID}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		values  []*string
		wantErr bool
	}{
		{name: "last allowed slot", values: append(make([]*string, MaxSlotsPerDay-1), ptr(p.ID))},
		{name: "null tail past the limit", values: append(make([]*string, MaxSlotsPerDay+4), nil)},
		{name: "blank tail past the limit", values: append(make([]*string, MaxSlotsPerDay), ptr("  "))},
		{name: "one past the limit", values: append(make([]*string, MaxSlotsPerDay), ptr(p.ID)), wantErr: true},
		{name: "far index", values: append(make([]*string, 1_000_000), ptr(p.ID)), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.TimeSchedule.PatchTimeSchedule(ctx, sem.ID, map[string][]*string{"monday": tt.values})
			if tt.wantErr {
				assertKind(t, err, errValidation)
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if n := len(got.Schedule.Monday); n > MaxSlotsPerDay {
				t.Errorf("monday holds %d slots", n)
			}
		})
	}

	view, err := svc.TimeSchedule.GetTimeSchedule(ctx, sem.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Schedule.Monday) != MaxSlotsPerDay {
		t.Errorf("stored monday holds %d slots, want %d", len(view.Schedule.Monday), MaxSlotsPerDay)
	}
}

func TestInternalMarks(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	cs := mustDepartment(t, svc, "CS", 1)
	grace := mustTeacher(t, svc, "grace", cs.ID)
	p := mustPaper(t, svc, "CS101", cs.ID, grace.ID, 1)
	alan := mustStudent(t, svc, "alan", cs.ID, 1)
	ada := mustStudent(t, svc, "ada", cs.ID, 1)

	_, err := svc.Internal.CreateInternal(ctx, p.ID, nil)
	assertKind(t, err, errValidation)
	_, err = svc.Internal.CreateInternal(ctx, p.ID, []models.Mark{{StudentID: alan.ID, Mark: -1}})
	assertKind(t, err, errValidation)
	_, err = svc.Internal.CreateInternal(ctx, "missing", []models.Mark{})
	assertKind(t, err, errNotFound)
	_, err = svc.Internal.ReplaceInternalMarks(ctx, p.ID, []models.Mark{})
	assertKind(t, err, errNotFound)

	if _, err := svc.Internal.CreateInternal(ctx, p.ID, []models.Mark{{StudentID: alan.ID, Mark: 18}}); err != nil {
		t.Fatal(err)
	}
	_, err = svc.Internal.CreateInternal(ctx, p.ID, []models.Mark{})
	assertKind(t, err, errConflict)

	replaced, err := svc.Internal.ReplaceInternalMarks(ctx, p.ID, []models.Mark{{StudentID: ada.ID, Mark: 20}})
	if err != nil {
		t.Fatal(err)
	}
	if len(replaced.Marks) != 1 || replaced.Marks[0].StudentID != ada.ID {
		t.Errorf("marks were not replaced wholesale: %+v", replaced.Marks)
	}

	_, err = svc.Internal.ListInternalsByStudent(ctx, alan.ID)
	assertKind(t, err, errNotFound)
	views, err := svc.Internal.ListInternalsByStudent(ctx, ada.ID)
	if err != nil || len(views) != 1 {
		t.Fatalf("ListInternalsByStudent = %+v, %v", views, err)
	}
	if views[0].Paper == nil || views[0].Paper.Code != "CS101" || views[0].Marks[0].Student.Name != "Student ada" {
		t.Errorf("internal view = %+v", views[0])
	}

	if err := svc.Student.DeleteStudent(ctx, ada.ID); err != nil {
		t.Fatal(err)
	}
	view, err := svc.Internal.GetInternalByPaper(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if view.Marks[0].Student != nil || view.Marks[0].StudentID != ada.ID {
		t.Errorf("mark of deleted student = %+v", view.Marks[0])
	}

	if err := svc.Internal.DeleteInternal(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	assertKind(t, svc.Internal.DeleteInternal(ctx, p.ID), errNotFound)
}

type recordingNotifier struct {
	events []string
}

func (r *recordingNotifier) Notify(eventType string, _ interface{}) {
	r.events = append(r.events, eventType)
}

func TestAnnouncements(t *testing.T) {
	store := memory.NewStore()
	clock := time.Date(2024, 3, 7, 14, 5, 0, 0, time.UTC)
	svc := NewAnnouncementService(store, zerolog.Nop(), func() time.Time { return clock })
	events := &recordingNotifier{}
	svc.SetNotifier(events)
	ctx := context.Background()

	_, err := svc.CreateAnnouncement(ctx, dto.CreateAnnouncementRequest{Content: " ", From: "Office"})
	assertKind(t, err, errValidation)

	first, err := svc.CreateAnnouncement(ctx, dto.CreateAnnouncementRequest{Content: "Exams", From: "Exam Cell"})
	if err != nil {
		t.Fatal(err)
	}
	if first.Datetime != "07/03/2024 2:05 PM" {
		t.Errorf("datetime = %q", first.Datetime)
	}
	for _, c := range []string{"Holiday", "Results"} {
		if _, err := svc.CreateAnnouncement(ctx, dto.CreateAnnouncementRequest{Content: c, From: "Office"}); err != nil {
			t.Fatal(err)
		}
	}

	items, info, err := svc.ListAnnouncements(ctx, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].Content != "Results" || items[1].Content != "Holiday" {
		t.Errorf("page 1 = %+v", items)
	}
	if info.TotalItems != 3 || info.TotalPages != 2 {
		t.Errorf("pagination = %+v", info)
	}
	items, _, _ = svc.ListAnnouncements(ctx, 2, 2)
	if len(items) != 1 || items[0].ID != first.ID {
		t.Errorf("page 2 = %+v", items)
	}

	updated, err := svc.UpdateAnnouncement(ctx, first.ID, dto.UpdateAnnouncementRequest{Content: "Exams moved"})
	if err != nil || updated.Content != "Exams moved" || updated.From != "Exam Cell" {
		t.Errorf("UpdateAnnouncement = %+v, %v", updated, err)
	}
	if err := svc.DeleteAnnouncement(ctx, first.ID); err != nil {
		t.Fatal(err)
	}
	assertKind(t, svc.DeleteAnnouncement(ctx, first.ID), errNotFound)

	// failed writes publish nothing
	want := []string{
		EventAnnouncementCreated, EventAnnouncementCreated, EventAnnouncementCreated,
		EventAnnouncementUpdated, EventAnnouncementDeleted,
	}
	if !reflect.DeepEqual(events.events, want) {
		t.Errorf("events = %v, want %v", events.events, want)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	cs := mustDepartment(t, svc, "CS", 2)
	grace := mustTeacher(t, svc, "grace", cs.ID)
	alan := mustStudent(t, svc, "alan", cs.ID, 2)

	resp, err := svc.Auth.Login(ctx, models.RoleTeacher, dto.LoginRequest{Username: "grace", Password: "secret"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Token.AccessToken != "token-teacher-"+grace.ID || resp.Token.TokenType != "Bearer" {
		t.Errorf("token = %+v", resp.Token)
	}
	if p, ok := resp.Profile.(dto.TeacherProfile); !ok || p.Department != cs.ID {
		t.Errorf("teacher profile = %#v", resp.Profile)
	}

	resp, err = svc.Auth.Login(ctx, models.RoleStudent, dto.LoginRequest{Username: "alan", Password: "secret"})
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := resp.Profile.(dto.StudentProfile); !ok || p.Semester != alan.Semester.ID {
		t.Errorf("student profile = %#v", resp.Profile)
	}

	_, err = svc.Auth.Login(ctx, models.RoleStudent, dto.LoginRequest{Username: "grace", Password: "secret"})
	assertKind(t, err, errNotFound)

	_, err = svc.Auth.Login(ctx, models.RoleTeacher, dto.LoginRequest{Username: "grace", Password: "wrong"})
	assertKind(t, err, apperrors.ErrInvalidCredentials)
	if msg := apperrors.Message(err, ""); msg != "Incorrect Password" {
		t.Errorf("message = %q", msg)
	}

	_, err = svc.Auth.Login(ctx, models.RoleAdmin, dto.LoginRequest{Username: "", Password: "secret"})
	assertKind(t, err, errValidation)
}

func TestLoginUpgradesHashCost(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	cs := mustDepartment(t, svc, "CS", 1)
	mustStudent(t, svc, "alan", cs.ID, 1)

	auth.BcryptCost = bcrypt.MinCost + 1
	defer func() { auth.BcryptCost = bcrypt.MinCost }()

	if _, err := svc.Auth.Login(ctx, models.RoleStudent, dto.LoginRequest{Username: "alan", Password: "secret"}); err != nil {
		t.Fatal(err)
	}
	st, err := store.Students().GetByUsername(ctx, "alan")
	if err != nil {
		t.Fatal(err)
	}
	if cost, _ := bcrypt.Cost([]byte(st.PasswordHash)); cost != bcrypt.MinCost+1 {
		t.Errorf("cost after login = %d", cost)
	}
	if _, err := svc.Auth.Login(ctx, models.RoleStudent, dto.LoginRequest{Username: "alan", Password: "secret"}); err != nil {
		t.Errorf("login with upgraded hash: %v", err)
	}
}

func TestStoreErrorMapping(t *testing.T) {
	custom := apperrors.NewValidationError("bad")
	if got := storeError(custom, "nf", "dup"); got != custom {
		t.Errorf("custom error was rewrapped: %v", got)
	}
	err := storeError(errors.New("connection reset"), "nf", "dup")
	assertKind(t, err, apperrors.ErrInternal)
	if apperrors.Message(err, "") == "connection reset" {
		t.Error("internal cause leaked into the message")
	}
}
