package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/db"
)

var timeScheduleColumns = []string{"id", "semester_id", "monday", "tuesday", "wednesday", "thursday", "friday"}

type pgTimeScheduleRepository struct {
	q  db.DBTX
	sb squirrel.StatementBuilderType
}

// Create inserts the schedule of a semester
func (r *pgTimeScheduleRepository) Create(ctx context.Context, schedule *models.TimeSchedule) error {
	w := schedule.Schedule.Clone()
	query, args, err := r.sb.Insert("time_schedules").
		Columns(timeScheduleColumns...).
		Values(schedule.ID, schedule.SemesterID, w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday).
		ToSql()
	if err != nil {
		return buildErr(err, "insert time schedule")
	}
	_, err = r.q.Exec(ctx, query, args...)
	return mapError(err, "error creating time schedule")
}

// GetBySemester retrieves the schedule of a semester
func (r *pgTimeScheduleRepository) GetBySemester(ctx context.Context, semesterID string) (*models.TimeSchedule, error) {
	query, args, err := r.sb.Select(timeScheduleColumns...).From("time_schedules").
		Where(squirrel.Eq{"semester_id": semesterID}).ToSql()
	if err != nil {
		return nil, buildErr(err, "get time schedule")
	}

	var ts models.TimeSchedule
	w := &ts.Schedule
	err = r.q.QueryRow(ctx, query, args...).Scan(
		&ts.ID, &ts.SemesterID, &w.Monday, &w.Tuesday, &w.Wednesday, &w.Thursday, &w.Friday,
	)
	if err != nil {
		return nil, mapError(err, "error retrieving time schedule")
	}
	ts.Schedule = ts.Schedule.Clone()
	return &ts, nil
}

// Update stores the whole week of an existing schedule
func (r *pgTimeScheduleRepository) Update(ctx context.Context, schedule *models.TimeSchedule) error {
	w := schedule.Schedule.Clone()
	query, args, err := r.sb.Update("time_schedules").
		SetMap(map[string]interface{}{
			"monday":     w.Monday,
			"tuesday":    w.Tuesday,
			"wednesday":  w.Wednesday,
			"thursday":   w.Thursday,
			"friday":     w.Friday,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"semester_id": schedule.SemesterID}).
		ToSql()
	if err != nil {
		return buildErr(err, "update time schedule")
	}
	return execOne(ctx, r.q, query, args, "error updating time schedule")
}

// DeleteBySemester removes the schedule of a semester
func (r *pgTimeScheduleRepository) DeleteBySemester(ctx context.Context, semesterID string) error {
	query, args, err := r.sb.Delete("time_schedules").Where(squirrel.Eq{"semester_id": semesterID}).ToSql()
	if err != nil {
		return buildErr(err, "delete time schedule")
	}
	return execOne(ctx, r.q, query, args, "error deleting time schedule")
}
