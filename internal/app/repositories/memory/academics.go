package memory

import (
	"context"
	"sort"

	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/repositories"
)

type paperRepo struct{ s *Store }

func checkPaperCode(d *dataset, paper *models.Paper) error {
	for id, existing := range d.papers.rows {
		if id != paper.ID && existing.Code == paper.Code {
			return repositories.ErrDuplicateKey
		}
	}
	return nil
}

func (r paperRepo) Create(_ context.Context, paper *models.Paper) error {
	return r.s.write(func(d *dataset) error {
		if err := checkPaperCode(d, paper); err != nil {
			return err
		}
		d.papers.insert(paper.ID, *paper)
		return nil
	})
}

func (r paperRepo) GetByID(_ context.Context, id string) (*models.Paper, error) {
	var out *models.Paper
	err := r.s.read(func(d *dataset) error {
		p, ok := d.papers.get(id)
		if !ok {
			return repositories.ErrNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r paperRepo) GetByIDs(_ context.Context, ids []string) ([]*models.Paper, error) {
	want := idSet(ids)
	return r.where(func(p models.Paper) bool { return want[p.ID] }, true)
}

func (r paperRepo) GetAll(_ context.Context) ([]*models.Paper, error) {
	return r.where(func(models.Paper) bool { return true }, false)
}

func (r paperRepo) GetByDepartment(_ context.Context, departmentID string) ([]*models.Paper, error) {
	return r.where(func(p models.Paper) bool { return p.DepartmentID == departmentID }, true)
}

func (r paperRepo) GetBySemester(_ context.Context, semesterID string) ([]*models.Paper, error) {
	return r.where(func(p models.Paper) bool { return p.SemesterID == semesterID }, true)
}

func (r paperRepo) where(keep func(models.Paper) bool, byCode bool) ([]*models.Paper, error) {
	var out []*models.Paper
	err := r.s.read(func(d *dataset) error {
		found := d.papers.filter(keep)
		if byCode {
			sort.SliceStable(found, func(i, j int) bool { return found[i].Code < found[j].Code })
		}
		out = ptrs(found)
		return nil
	})
	return out, err
}

func (r paperRepo) Update(_ context.Context, paper *models.Paper) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.papers.get(paper.ID); !ok {
			return repositories.ErrNotFound
		}
		if err := checkPaperCode(d, paper); err != nil {
			return err
		}
		d.papers.insert(paper.ID, *paper)
		return nil
	})
}

func (r paperRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *dataset) error {
		if !d.papers.remove(id) {
			return repositories.ErrNotFound
		}
		return nil
	})
}

func (r paperRepo) Count(_ context.Context) (int64, error) {
	var n int64
	err := r.s.read(func(d *dataset) error {
		n = int64(len(d.papers.rows))
		return nil
	})
	return n, err
}

type timeScheduleRepo struct{ s *Store }

func (r timeScheduleRepo) Create(_ context.Context, schedule *models.TimeSchedule) error {
	return r.s.write(func(d *dataset) error {
		for _, existing := range d.timeSchedules.rows {
			if existing.SemesterID == schedule.SemesterID {
				return repositories.ErrDuplicateKey
			}
		}
		d.timeSchedules.insert(schedule.ID, cloneSchedule(*schedule))
		return nil
	})
}

func (r timeScheduleRepo) GetBySemester(_ context.Context, semesterID string) (*models.TimeSchedule, error) {
	var out *models.TimeSchedule
	err := r.s.read(func(d *dataset) error {
		found := d.timeSchedules.filter(func(ts models.TimeSchedule) bool { return ts.SemesterID == semesterID })
		if len(found) == 0 {
			return repositories.ErrNotFound
		}
		ts := cloneSchedule(found[0])
		out = &ts
		return nil
	})
	return out, err
}

func (r timeScheduleRepo) Update(_ context.Context, schedule *models.TimeSchedule) error {
	return r.s.write(func(d *dataset) error {
		found := d.timeSchedules.filter(func(ts models.TimeSchedule) bool { return ts.SemesterID == schedule.SemesterID })
		if len(found) == 0 {
			return repositories.ErrNotFound
		}
		current := found[0]
		current.Schedule = schedule.Schedule.Clone()
		d.timeSchedules.insert(current.ID, current)
		return nil
	})
}

func (r timeScheduleRepo) DeleteBySemester(_ context.Context, semesterID string) error {
	return r.s.write(func(d *dataset) error {
		found := d.timeSchedules.filter(func(ts models.TimeSchedule) bool { return ts.SemesterID == semesterID })
		if len(found) == 0 {
			return repositories.ErrNotFound
		}
		d.timeSchedules.remove(found[0].ID)
		return nil
	})
}

type internalRepo struct{ s *Store }

func (r internalRepo) Create(_ context.Context, internal *models.Internal) error {
	return r.s.write(func(d *dataset) error {
		for _, existing := range d.internals.rows {
			if existing.PaperID == internal.PaperID {
				return repositories.ErrDuplicateKey
			}
		}
		d.internals.insert(internal.ID, cloneInternal(*internal))
		return nil
	})
}

func (r internalRepo) byPaper(d *dataset, paperID string) (models.Internal, bool) {
	found := d.internals.filter(func(in models.Internal) bool { return in.PaperID == paperID })
	if len(found) == 0 {
		return models.Internal{}, false
	}
	return found[0], true
}

func (r internalRepo) GetByPaper(_ context.Context, paperID string) (*models.Internal, error) {
	var out *models.Internal
	err := r.s.read(func(d *dataset) error {
		in, ok := r.byPaper(d, paperID)
		if !ok {
			return repositories.ErrNotFound
		}
		in = cloneInternal(in)
		out = &in
		return nil
	})
	return out, err
}

func (r internalRepo) GetByStudent(_ context.Context, studentID string) ([]*models.Internal, error) {
	out := []*models.Internal{}
	err := r.s.read(func(d *dataset) error {
		for _, in := range d.internals.all() {
			for _, m := range in.Marks {
				if m.StudentID == studentID {
					cp := cloneInternal(in)
					out = append(out, &cp)
					break
				}
			}
		}
		return nil
	})
	return out, err
}

func (r internalRepo) Update(_ context.Context, internal *models.Internal) error {
	return r.s.write(func(d *dataset) error {
		current, ok := r.byPaper(d, internal.PaperID)
		if !ok {
			return repositories.ErrNotFound
		}
		current.Marks = cloneInternal(*internal).Marks
		d.internals.insert(current.ID, current)
		return nil
	})
}

func (r internalRepo) DeleteByPaper(_ context.Context, paperID string) error {
	return r.s.write(func(d *dataset) error {
		current, ok := r.byPaper(d, paperID)
		if !ok {
			return repositories.ErrNotFound
		}
		d.internals.remove(current.ID)
		return nil
	})
}

type announcementRepo struct{ s *Store }

func (r announcementRepo) Create(_ context.Context, announcement *models.Announcement) error {
	return r.s.write(func(d *dataset) error {
		now := r.s.Now()
		announcement.CreatedAt = now
		announcement.UpdatedAt = now
		d.announcements.insert(announcement.ID, *announcement)
		return nil
	})
}

func (r announcementRepo) GetByID(_ context.Context, id string) (*models.Announcement, error) {
	var out *models.Announcement
	err := r.s.read(func(d *dataset) error {
		a, ok := d.announcements.get(id)
		if !ok {
			return repositories.ErrNotFound
		}
		out = &a
		return nil
	})
	return out, err
}

// List walks insertion order backwards, which is newest first
func (r announcementRepo) List(_ context.Context, offset, limit uint64) ([]*models.Announcement, error) {
	out := []*models.Announcement{}
	err := r.s.read(func(d *dataset) error {
		all := d.announcements.all()
		for i := len(all) - 1 - int(offset); i >= 0 && uint64(len(out)) < limit; i-- {
			a := all[i]
			out = append(out, &a)
		}
		return nil
	})
	return out, err
}

func (r announcementRepo) Update(_ context.Context, announcement *models.Announcement) error {
	return r.s.write(func(d *dataset) error {
		current, ok := d.announcements.get(announcement.ID)
		if !ok {
			return repositories.ErrNotFound
		}
		current.Content = announcement.Content
		current.From = announcement.From
		current.Datetime = announcement.Datetime
		current.UpdatedAt = r.s.Now()
		announcement.CreatedAt = current.CreatedAt
		announcement.UpdatedAt = current.UpdatedAt
		d.announcements.insert(current.ID, current)
		return nil
	})
}

func (r announcementRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *dataset) error {
		if !d.announcements.remove(id) {
			return repositories.ErrNotFound
		}
		return nil
	})
}

func (r announcementRepo) Count(_ context.Context) (int64, error) {
	var n int64
	err := r.s.read(func(d *dataset) error {
		n = int64(len(d.announcements.rows))
		return nil
	})
	return n, err
}
