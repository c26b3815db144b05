package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestConstraintClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "students_username_key"}
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "teachers_department_id_fkey"}
	wrapped := fmt.Errorf("insert student: %w", unique)

	tests := []struct {
		name   string
		err    error
		unique bool
		fk     bool
	}{
		{"unique", unique, true, false},
		{"wrapped unique", wrapped, true, false},
		{"foreign key", fk, false, true},
		{"plain", errors.New("boom"), false, false},
		{"nil", nil, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.unique {
				t.Fatalf("IsUniqueViolation = %v, want %v", got, tt.unique)
			}
			if got := IsForeignKeyViolation(tt.err); got != tt.fk {
				t.Fatalf("IsForeignKeyViolation = %v, want %v", got, tt.fk)
			}
		})
	}

	if !IsDuplicateConstraintError(wrapped, "students_username_key") {
		t.Fatalf("expected constraint match")
	}
	if IsDuplicateConstraintError(wrapped, "papers_code_key") {
		t.Fatalf("unexpected constraint match")
	}
}
