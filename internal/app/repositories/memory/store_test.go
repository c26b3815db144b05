package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/repositories"
)

func seedDepartment(t *testing.T, s *Store, id, name string, semesters int) {
	t.Helper()
	ctx := context.Background()
	if err := s.Departments().Create(ctx, &models.Department{ID: id, Name: name, SemesterCount: semesters}); err != nil {
		t.Fatalf("create department: %v", err)
	}
	batch := make([]*models.Semester, 0, semesters)
	for n := 1; n <= semesters; n++ {
		batch = append(batch, &models.Semester{ID: id + "-s" + string(rune('0'+n)), Number: n, DepartmentID: id})
	}
	if err := s.Semesters().CreateBatch(ctx, batch); err != nil {
		t.Fatalf("create semesters: %v", err)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.Departments().Create(ctx, &models.Department{ID: "d1", Name: "CS", SemesterCount: 2}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx error = %v, want boom", err)
	}

	n, _ := s.Departments().Count(ctx)
	if n != 0 {
		t.Errorf("departments after rollback = %d, want 0", n)
	}
}

func TestWithTxCommits(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		// nested calls join the outer transaction
		return tx.WithTx(ctx, func(ctx context.Context, inner repositories.Store) error {
			return inner.Departments().Create(ctx, &models.Department{ID: "d1", Name: "CS", SemesterCount: 1})
		})
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	if _, err := s.Departments().GetByID(ctx, "d1"); err != nil {
		t.Errorf("committed department missing: %v", err)
	}
}

func TestUniqueConstraints(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedDepartment(t, s, "d1", "CS", 2)

	tests := []struct {
		name string
		fn   func() error
	}{
		{"department name", func() error {
			return s.Departments().Create(ctx, &models.Department{ID: "d2", Name: "CS", SemesterCount: 1})
		}},
		{"semester number", func() error {
			return s.Semesters().CreateBatch(ctx, []*models.Semester{{ID: "x", Number: 1, DepartmentID: "d1"}})
		}},
		{"teacher username", func() error {
			if err := s.Teachers().Create(ctx, &models.Teacher{ID: "t1", Username: "amy", DepartmentID: "d1"}); err != nil {
				return err
			}
			return s.Teachers().Create(ctx, &models.Teacher{ID: "t2", Username: "amy", DepartmentID: "d1"})
		}},
		{"paper code", func() error {
			if err := s.Papers().Create(ctx, &models.Paper{ID: "p1", Code: "CS1"}); err != nil {
				return err
			}
			return s.Papers().Create(ctx, &models.Paper{ID: "p2", Code: "CS1"})
		}},
		{"schedule per semester", func() error {
			if err := s.TimeSchedules().Create(ctx, &models.TimeSchedule{ID: "ts1", SemesterID: "d1-s1"}); err != nil {
				return err
			}
			return s.TimeSchedules().Create(ctx, &models.TimeSchedule{ID: "ts2", SemesterID: "d1-s1"})
		}},
		{"internal per paper", func() error {
			if err := s.Internals().Create(ctx, &models.Internal{ID: "i1", PaperID: "p9"}); err != nil {
				return err
			}
			return s.Internals().Create(ctx, &models.Internal{ID: "i2", PaperID: "p9"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, repositories.ErrDuplicateKey) {
				t.Errorf("error = %v, want ErrDuplicateKey", err)
			}
		})
	}
}

func TestUpdateKeepsOwnUsername(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedDepartment(t, s, "d1", "CS", 1)

	teacher := &models.Teacher{ID: "t1", Name: "Amy", Username: "amy", DepartmentID: "d1"}
	if err := s.Teachers().Create(ctx, teacher); err != nil {
		t.Fatal(err)
	}
	teacher.Name = "Amy Pond"
	if err := s.Teachers().Update(ctx, teacher); err != nil {
		t.Fatalf("update with own username: %v", err)
	}
}

func TestUpdatePasswordHash(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedDepartment(t, s, "d1", "CS", 1)
	if err := s.Teachers().Create(ctx, &models.Teacher{ID: "t1", Name: "Amy", Username: "amy", DepartmentID: "d1", PasswordHash: "old"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Students().Create(ctx, &models.Student{ID: "st1", Name: "Rory", Username: "rory", DepartmentID: "d1", SemesterID: "d1-s1", PasswordHash: "old"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		update func(id string) error
		read   func() (name, hash string, err error)
		want   string
	}{
		{
			name:   "teacher",
			update: func(id string) error { return s.Teachers().UpdatePasswordHash(ctx, id, "new") },
			read: func() (string, string, error) {
				v, err := s.Teachers().GetByID(ctx, "t1")
				if err != nil {
					return "", "", err
				}
				return v.Name, v.PasswordHash, nil
			},
			want: "Amy",
		},
		{
			name:   "student",
			update: func(id string) error { return s.Students().UpdatePasswordHash(ctx, id, "new") },
			read: func() (string, string, error) {
				v, err := s.Students().GetByID(ctx, "st1")
				if err != nil {
					return "", "", err
				}
				return v.Name, v.PasswordHash, nil
			},
			want: "Rory",
		},
	}
	ids := map[string]string{"teacher": "t1", "student": "st1"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.update(ids[tt.name]); err != nil {
				t.Fatal(err)
			}
			name, hash, err := tt.read()
			if err != nil {
				t.Fatal(err)
			}
			if name != tt.want || hash != "new" {
				t.Errorf("got name %q hash %q", name, hash)
			}
			if err := tt.update("missing"); !errors.Is(err, repositories.ErrNotFound) {
				t.Errorf("unknown id error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestDeleteDepartmentWithDependents(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedDepartment(t, s, "d1", "CS", 2)

	if err := s.Departments().Delete(ctx, "d1"); !errors.Is(err, repositories.ErrReferenced) {
		t.Fatalf("Delete error = %v, want ErrReferenced", err)
	}

	if err := s.Students().Create(ctx, &models.Student{ID: "st1", Username: "bo", SemesterID: "d1-s1", DepartmentID: "d1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Semesters().DeleteByDepartment(ctx, "d1"); !errors.Is(err, repositories.ErrReferenced) {
		t.Fatalf("DeleteByDepartment error = %v, want ErrReferenced", err)
	}

	ids, err := s.Students().DeleteBySemesters(ctx, []string{"d1-s1", "d1-s2"})
	if err != nil || len(ids) != 1 {
		t.Fatalf("DeleteBySemesters = %v, %v", ids, err)
	}
	semIDs, err := s.Semesters().DeleteByDepartment(ctx, "d1")
	if err != nil || len(semIDs) != 2 {
		t.Fatalf("DeleteByDepartment = %v, %v", semIDs, err)
	}
	if err := s.Departments().Delete(ctx, "d1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestFindFirstByNumberUsesCreationOrder(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedDepartment(t, s, "d1", "CS", 3)
	seedDepartment(t, s, "d2", "EE", 3)

	sem, err := s.Semesters().FindFirstByNumber(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if sem.DepartmentID != "d1" {
		t.Errorf("FindFirstByNumber department = %s, want d1", sem.DepartmentID)
	}

	if _, err := s.Semesters().FindFirstByNumber(ctx, 9); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("missing number error = %v", err)
	}
}

func TestReadsAreCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	ts := &models.TimeSchedule{ID: "ts1", SemesterID: "s1", Schedule: models.WeekSchedule{Monday: []string{"p1"}}}
	if err := s.TimeSchedules().Create(ctx, ts); err != nil {
		t.Fatal(err)
	}
	got, _ := s.TimeSchedules().GetBySemester(ctx, "s1")
	got.Schedule.Monday[0] = "changed"

	again, _ := s.TimeSchedules().GetBySemester(ctx, "s1")
	if again.Schedule.Monday[0] != "p1" {
		t.Errorf("stored schedule mutated through a read: %v", again.Schedule.Monday)
	}
}

func TestInternalsByStudent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_ = s.Internals().Create(ctx, &models.Internal{ID: "i1", PaperID: "p1", Marks: []models.Mark{{StudentID: "a", Mark: 10}}})
	_ = s.Internals().Create(ctx, &models.Internal{ID: "i2", PaperID: "p2", Marks: []models.Mark{{StudentID: "b", Mark: 7}}})
	_ = s.Internals().Create(ctx, &models.Internal{ID: "i3", PaperID: "p3", Marks: []models.Mark{{StudentID: "a", Mark: 3}}})

	got, err := s.Internals().GetByStudent(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].PaperID != "p1" || got[1].PaperID != "p3" {
		t.Errorf("GetByStudent = %+v", got)
	}
}

func TestAnnouncementsNewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Date(2024, 3, 7, 14, 0, 0, 0, time.UTC)
	tick := 0
	s.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, id := range []string{"a1", "a2", "a3"} {
		if err := s.Announcements().Create(ctx, &models.Announcement{ID: id, Content: id}); err != nil {
			t.Fatal(err)
		}
	}

	page, err := s.Announcements().List(ctx, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].ID != "a2" || page[1].ID != "a1" {
		t.Errorf("List(1, 5) = %v", ids(page))
	}
	if page[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}
}

func ids(as []*models.Announcement) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.ID
	}
	return out
}
