package memory

import (
	"context"

	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/repositories"
)

type teacherRepo struct{ s *Store }

func (r teacherRepo) Create(_ context.Context, teacher *models.Teacher) error {
	return r.s.write(func(d *dataset) error {
		if err := checkTeacher(d, teacher); err != nil {
			return err
		}
		d.teachers.insert(teacher.ID, *teacher)
		return nil
	})
}

func checkTeacher(d *dataset, teacher *models.Teacher) error {
	for id, existing := range d.teachers.rows {
		if id != teacher.ID && existing.Username == teacher.Username {
			return repositories.ErrDuplicateKey
		}
	}
	if _, ok := d.departments.get(teacher.DepartmentID); !ok {
		return repositories.ErrReferenced
	}
	return nil
}

func (r teacherRepo) GetByID(_ context.Context, id string) (*models.Teacher, error) {
	return r.first(func(t models.Teacher) bool { return t.ID == id })
}

func (r teacherRepo) GetByUsername(_ context.Context, username string) (*models.Teacher, error) {
	return r.first(func(t models.Teacher) bool { return t.Username == username })
}

func (r teacherRepo) first(match func(models.Teacher) bool) (*models.Teacher, error) {
	var out *models.Teacher
	err := r.s.read(func(d *dataset) error {
		found := d.teachers.filter(match)
		if len(found) == 0 {
			return repositories.ErrNotFound
		}
		out = &found[0]
		return nil
	})
	return out, err
}

func (r teacherRepo) GetByIDs(_ context.Context, ids []string) ([]*models.Teacher, error) {
	want := idSet(ids)
	return r.where(func(t models.Teacher) bool { return want[t.ID] })
}

func (r teacherRepo) GetAll(_ context.Context) ([]*models.Teacher, error) {
	return r.where(func(models.Teacher) bool { return true })
}

func (r teacherRepo) where(keep func(models.Teacher) bool) ([]*models.Teacher, error) {
	var out []*models.Teacher
	err := r.s.read(func(d *dataset) error {
		out = ptrs(d.teachers.filter(keep))
		return nil
	})
	return out, err
}

func (r teacherRepo) Update(_ context.Context, teacher *models.Teacher) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.teachers.get(teacher.ID); !ok {
			return repositories.ErrNotFound
		}
		if err := checkTeacher(d, teacher); err != nil {
			return err
		}
		d.teachers.insert(teacher.ID, *teacher)
		return nil
	})
}

func (r teacherRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	return r.s.write(func(d *dataset) error {
		row, ok := d.teachers.get(id)
		if !ok {
			return repositories.ErrNotFound
		}
		row.PasswordHash = hash
		d.teachers.insert(id, row)
		return nil
	})
}

func (r teacherRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *dataset) error {
		if !d.teachers.remove(id) {
			return repositories.ErrNotFound
		}
		return nil
	})
}

func (r teacherRepo) DeleteByDepartment(_ context.Context, departmentID string) ([]string, error) {
	ids := []string{}
	err := r.s.write(func(d *dataset) error {
		for _, t := range d.teachers.filter(func(t models.Teacher) bool { return t.DepartmentID == departmentID }) {
			d.teachers.remove(t.ID)
			ids = append(ids, t.ID)
		}
		return nil
	})
	return ids, err
}

func (r teacherRepo) Count(_ context.Context) (int64, error) {
	var n int64
	err := r.s.read(func(d *dataset) error {
		n = int64(len(d.teachers.rows))
		return nil
	})
	return n, err
}

type studentRepo struct{ s *Store }

func checkStudent(d *dataset, student *models.Student) error {
	for id, existing := range d.students.rows {
		if id != student.ID && existing.Username == student.Username {
			return repositories.ErrDuplicateKey
		}
	}
	if _, ok := d.semesters.get(student.SemesterID); !ok {
		return repositories.ErrReferenced
	}
	if _, ok := d.departments.get(student.DepartmentID); !ok {
		return repositories.ErrReferenced
	}
	return nil
}

func (r studentRepo) Create(_ context.Context, student *models.Student) error {
	return r.s.write(func(d *dataset) error {
		if err := checkStudent(d, student); err != nil {
			return err
		}
		d.students.insert(student.ID, *student)
		return nil
	})
}

func (r studentRepo) GetByID(_ context.Context, id string) (*models.Student, error) {
	return r.first(func(st models.Student) bool { return st.ID == id })
}

func (r studentRepo) GetByUsername(_ context.Context, username string) (*models.Student, error) {
	return r.first(func(st models.Student) bool { return st.Username == username })
}

func (r studentRepo) first(match func(models.Student) bool) (*models.Student, error) {
	var out *models.Student
	err := r.s.read(func(d *dataset) error {
		found := d.students.filter(match)
		if len(found) == 0 {
			return repositories.ErrNotFound
		}
		out = &found[0]
		return nil
	})
	return out, err
}

func (r studentRepo) GetByIDs(_ context.Context, ids []string) ([]*models.Student, error) {
	want := idSet(ids)
	return r.where(func(st models.Student) bool { return want[st.ID] })
}

func (r studentRepo) GetAll(_ context.Context) ([]*models.Student, error) {
	return r.where(func(models.Student) bool { return true })
}

func (r studentRepo) GetBySemester(_ context.Context, semesterID string) ([]*models.Student, error) {
	return r.where(func(st models.Student) bool { return st.SemesterID == semesterID })
}

func (r studentRepo) where(keep func(models.Student) bool) ([]*models.Student, error) {
	var out []*models.Student
	err := r.s.read(func(d *dataset) error {
		out = ptrs(d.students.filter(keep))
		return nil
	})
	return out, err
}

func (r studentRepo) Update(_ context.Context, student *models.Student) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.students.get(student.ID); !ok {
			return repositories.ErrNotFound
		}
		if err := checkStudent(d, student); err != nil {
			return err
		}
		d.students.insert(student.ID, *student)
		return nil
	})
}

func (r studentRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	return r.s.write(func(d *dataset) error {
		row, ok := d.students.get(id)
		if !ok {
			return repositories.ErrNotFound
		}
		row.PasswordHash = hash
		d.students.insert(id, row)
		return nil
	})
}

func (r studentRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *dataset) error {
		if !d.students.remove(id) {
			return repositories.ErrNotFound
		}
		return nil
	})
}

func (r studentRepo) DeleteBySemesters(_ context.Context, semesterIDs []string) ([]string, error) {
	ids := []string{}
	want := idSet(semesterIDs)
	err := r.s.write(func(d *dataset) error {
		for _, st := range d.students.filter(func(st models.Student) bool { return want[st.SemesterID] }) {
			d.students.remove(st.ID)
			ids = append(ids, st.ID)
		}
		return nil
	})
	return ids, err
}

func (r studentRepo) Count(_ context.Context) (int64, error) {
	var n int64
	err := r.s.read(func(d *dataset) error {
		n = int64(len(d.students.rows))
		return nil
	})
	return n, err
}

type adminRepo struct{ s *Store }

func (r adminRepo) Create(_ context.Context, admin *models.Admin) error {
	return r.s.write(func(d *dataset) error {
		for _, existing := range d.admins.rows {
			if existing.Username == admin.Username {
				return repositories.ErrDuplicateKey
			}
		}
		d.admins.insert(admin.ID, *admin)
		return nil
	})
}

func (r adminRepo) GetByID(_ context.Context, id string) (*models.Admin, error) {
	return r.first(func(a models.Admin) bool { return a.ID == id })
}

func (r adminRepo) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	return r.first(func(a models.Admin) bool { return a.Username == username })
}

func (r adminRepo) first(match func(models.Admin) bool) (*models.Admin, error) {
	var out *models.Admin
	err := r.s.read(func(d *dataset) error {
		found := d.admins.filter(match)
		if len(found) == 0 {
			return repositories.ErrNotFound
		}
		out = &found[0]
		return nil
	})
	return out, err
}

func (r adminRepo) Update(_ context.Context, admin *models.Admin) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.admins.get(admin.ID); !ok {
			return repositories.ErrNotFound
		}
		for id, existing := range d.admins.rows {
			if id != admin.ID && existing.Username == admin.Username {
				return repositories.ErrDuplicateKey
			}
		}
		d.admins.insert(admin.ID, *admin)
		return nil
	})
}

func (r adminRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	return r.s.write(func(d *dataset) error {
		row, ok := d.admins.get(id)
		if !ok {
			return repositories.ErrNotFound
		}
		row.PasswordHash = hash
		d.admins.insert(id, row)
		return nil
	})
}

func (r adminRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *dataset) error {
		if !d.admins.remove(id) {
			return repositories.ErrNotFound
		}
		return nil
	})
}

func (r adminRepo) Count(_ context.Context) (int64, error) {
	var n int64
	err := r.s.read(func(d *dataset) error {
		n = int64(len(d.admins.rows))
		return nil
	})
	return n, err
}
