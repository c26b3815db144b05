package memory

import (
	"context"
	"sort"

	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/repositories"
)

type departmentRepo struct{ s *Store }

func (r departmentRepo) Create(_ context.Context, department *models.Department) error {
	return r.s.write(func(d *dataset) error {
		for _, existing := range d.departments.rows {
			if existing.Name == department.Name {
				return repositories.ErrDuplicateKey
			}
		}
		d.departments.insert(department.ID, *department)
		return nil
	})
}

func (r departmentRepo) GetByID(_ context.Context, id string) (*models.Department, error) {
	var out *models.Department
	err := r.s.read(func(d *dataset) error {
		dep, ok := d.departments.get(id)
		if !ok {
			return repositories.ErrNotFound
		}
		out = &dep
		return nil
	})
	return out, err
}

func (r departmentRepo) GetByIDs(_ context.Context, ids []string) ([]*models.Department, error) {
	var out []*models.Department
	err := r.s.read(func(d *dataset) error {
		want := idSet(ids)
		out = ptrs(d.departments.filter(func(dep models.Department) bool { return want[dep.ID] }))
		return nil
	})
	return out, err
}

func (r departmentRepo) GetAll(_ context.Context) ([]*models.Department, error) {
	var out []*models.Department
	err := r.s.read(func(d *dataset) error {
		out = ptrs(d.departments.all())
		return nil
	})
	return out, err
}

func (r departmentRepo) Update(_ context.Context, department *models.Department) error {
	return r.s.write(func(d *dataset) error {
		current, ok := d.departments.get(department.ID)
		if !ok {
			return repositories.ErrNotFound
		}
		for id, existing := range d.departments.rows {
			if id != department.ID && existing.Name == department.Name {
				return repositories.ErrDuplicateKey
			}
		}
		current.Name = department.Name
		d.departments.insert(current.ID, current)
		return nil
	})
}

func (r departmentRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.departments.get(id); !ok {
			return repositories.ErrNotFound
		}
		for _, sem := range d.semesters.rows {
			if sem.DepartmentID == id {
				return repositories.ErrReferenced
			}
		}
		for _, t := range d.teachers.rows {
			if t.DepartmentID == id {
				return repositories.ErrReferenced
			}
		}
		for _, st := range d.students.rows {
			if st.DepartmentID == id {
				return repositories.ErrReferenced
			}
		}
		if !d.departments.remove(id) {
			return repositories.ErrNotFound
		}
		return nil
	})
}

func (r departmentRepo) Count(_ context.Context) (int64, error) {
	var n int64
	err := r.s.read(func(d *dataset) error {
		n = int64(len(d.departments.rows))
		return nil
	})
	return n, err
}

type semesterRepo struct{ s *Store }

func (r semesterRepo) CreateBatch(_ context.Context, semesters []*models.Semester) error {
	return r.s.write(func(d *dataset) error {
		seen := make(map[string]map[int]bool)
		for _, existing := range d.semesters.rows {
			if seen[existing.DepartmentID] == nil {
				seen[existing.DepartmentID] = make(map[int]bool)
			}
			seen[existing.DepartmentID][existing.Number] = true
		}
		for _, sem := range semesters {
			if _, ok := d.departments.get(sem.DepartmentID); !ok {
				return repositories.ErrReferenced
			}
			if seen[sem.DepartmentID][sem.Number] {
				return repositories.ErrDuplicateKey
			}
			if seen[sem.DepartmentID] == nil {
				seen[sem.DepartmentID] = make(map[int]bool)
			}
			seen[sem.DepartmentID][sem.Number] = true
		}
		for _, sem := range semesters {
			d.semesters.insert(sem.ID, *sem)
		}
		return nil
	})
}

func (r semesterRepo) GetByID(_ context.Context, id string) (*models.Semester, error) {
	var out *models.Semester
	err := r.s.read(func(d *dataset) error {
		sem, ok := d.semesters.get(id)
		if !ok {
			return repositories.ErrNotFound
		}
		out = &sem
		return nil
	})
	return out, err
}

func (r semesterRepo) GetByIDs(_ context.Context, ids []string) ([]*models.Semester, error) {
	want := idSet(ids)
	return r.where(func(sem models.Semester) bool { return want[sem.ID] })
}

func (r semesterRepo) GetByDepartment(_ context.Context, departmentID string) ([]*models.Semester, error) {
	return r.where(func(sem models.Semester) bool { return sem.DepartmentID == departmentID })
}

func (r semesterRepo) where(keep func(models.Semester) bool) ([]*models.Semester, error) {
	var out []*models.Semester
	err := r.s.read(func(d *dataset) error {
		found := d.semesters.filter(keep)
		sort.SliceStable(found, func(i, j int) bool { return found[i].Number < found[j].Number })
		out = ptrs(found)
		return nil
	})
	return out, err
}

func (r semesterRepo) FindByDepartmentAndNumber(_ context.Context, departmentID string, number int) (*models.Semester, error) {
	return r.first(func(sem models.Semester) bool {
		return sem.DepartmentID == departmentID && sem.Number == number
	})
}

func (r semesterRepo) FindFirstByNumber(_ context.Context, number int) (*models.Semester, error) {
	return r.first(func(sem models.Semester) bool { return sem.Number == number })
}

func (r semesterRepo) first(match func(models.Semester) bool) (*models.Semester, error) {
	var out *models.Semester
	err := r.s.read(func(d *dataset) error {
		found := d.semesters.filter(match)
		if len(found) == 0 {
			return repositories.ErrNotFound
		}
		out = &found[0]
		return nil
	})
	return out, err
}

func (r semesterRepo) DeleteByDepartment(_ context.Context, departmentID string) ([]string, error) {
	ids := []string{}
	err := r.s.write(func(d *dataset) error {
		for _, sem := range d.semesters.filter(func(sem models.Semester) bool { return sem.DepartmentID == departmentID }) {
			for _, st := range d.students.rows {
				if st.SemesterID == sem.ID {
					return repositories.ErrReferenced
				}
			}
		}
		for _, sem := range d.semesters.filter(func(sem models.Semester) bool { return sem.DepartmentID == departmentID }) {
			d.semesters.remove(sem.ID)
			ids = append(ids, sem.ID)
		}
		return nil
	})
	return ids, err
}
