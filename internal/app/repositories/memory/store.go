// Package memory provides an in-process Store used for tests and for running
// the API without PostgreSQL. It enforces the same unique constraints as the
// SQL schema.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/repositories"
)

// table keeps rows by id and remembers insertion order
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) insert(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// all returns the rows in insertion order
func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) filter(keep func(T) bool) []T {
	out := []T{}
	for _, id := range t.order {
		if v := t.rows[id]; keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *table[T]) clone(cp func(T) T) *table[T] {
	c := &table[T]{
		rows:  make(map[string]T, len(t.rows)),
		order: append([]string(nil), t.order...),
	}
	for id, v := range t.rows {
		c.rows[id] = cp(v)
	}
	return c
}

func same[T any](v T) T { return v }

type dataset struct {
	departments   *table[models.Department]
	semesters     *table[models.Semester]
	teachers      *table[models.Teacher]
	students      *table[models.Student]
	papers        *table[models.Paper]
	timeSchedules *table[models.TimeSchedule]
	internals     *table[models.Internal]
	announcements *table[models.Announcement]
	admins        *table[models.Admin]
}

func newDataset() *dataset {
	return &dataset{
		departments:   newTable[models.Department](),
		semesters:     newTable[models.Semester](),
		teachers:      newTable[models.Teacher](),
		students:      newTable[models.Student](),
		papers:        newTable[models.Paper](),
		timeSchedules: newTable[models.TimeSchedule](),
		internals:     newTable[models.Internal](),
		announcements: newTable[models.Announcement](),
		admins:        newTable[models.Admin](),
	}
}

func (d *dataset) clone() *dataset {
	return &dataset{
		departments:   d.departments.clone(same[models.Department]),
		semesters:     d.semesters.clone(same[models.Semester]),
		teachers:      d.teachers.clone(same[models.Teacher]),
		students:      d.students.clone(same[models.Student]),
		papers:        d.papers.clone(same[models.Paper]),
		timeSchedules: d.timeSchedules.clone(cloneSchedule),
		internals:     d.internals.clone(cloneInternal),
		announcements: d.announcements.clone(same[models.Announcement]),
		admins:        d.admins.clone(same[models.Admin]),
	}
}

func cloneSchedule(ts models.TimeSchedule) models.TimeSchedule {
	ts.Schedule = ts.Schedule.Clone()
	return ts
}

func cloneInternal(in models.Internal) models.Internal {
	marks := make([]models.Mark, len(in.Marks))
	copy(marks, in.Marks)
	in.Marks = marks
	return in
}

// Store is a repositories.Store held entirely in memory.
//
// Transactions run against a private copy of the data that replaces the
// shared copy on commit. Writers, transactional or not, are serialized.
type Store struct {
	mu   *sync.RWMutex
	txMu *sync.Mutex
	data *dataset
	inTx bool

	// Now stamps announcement timestamps
	Now func() time.Time
}

var _ repositories.Store = (*Store)(nil)

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		mu:   &sync.RWMutex{},
		txMu: &sync.Mutex{},
		data: newDataset(),
		Now:  time.Now,
	}
}

func (s *Store) read(fn func(d *dataset) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

func (s *Store) write(fn func(d *dataset) error) error {
	if !s.inTx {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// WithTx runs fn against a snapshot and publishes it only when fn succeeds
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	tx := &Store{
		mu:   &sync.RWMutex{},
		txMu: s.txMu,
		data: snapshot,
		inTx: true,
		Now:  s.Now,
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = snapshot
	s.mu.Unlock()
	return nil
}

func (s *Store) Departments() repositories.DepartmentRepository { return departmentRepo{s} }
func (s *Store) Semesters() repositories.SemesterRepository     { return semesterRepo{s} }
func (s *Store) Teachers() repositories.TeacherRepository       { return teacherRepo{s} }
func (s *Store) Students() repositories.StudentRepository       { return studentRepo{s} }
func (s *Store) Papers() repositories.PaperRepository           { return paperRepo{s} }
func (s *Store) TimeSchedules() repositories.TimeScheduleRepository {
	return timeScheduleRepo{s}
}
func (s *Store) Internals() repositories.InternalRepository         { return internalRepo{s} }
func (s *Store) Announcements() repositories.AnnouncementRepository { return announcementRepo{s} }
func (s *Store) Admins() repositories.AdminRepository               { return adminRepo{s} }

func ptrs[T any](vals []T) []*T {
	out := make([]*T, len(vals))
	for i := range vals {
		out[i] = &vals[i]
	}
	return out
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
