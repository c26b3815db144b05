package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/repositories"
	"github.com/yigit/campuslink/internal/app/repositories/memory"
	"github.com/yigit/campuslink/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginTrimsUsername(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	admin, err := svc.Admin.CreateAdmin(ctx, dto.CreateAdminRequest{Name: "Root", Username: "  root  ", Password: "secret"})
	if err != nil {
		t.Fatal(err)
	}

	for _, username := range []string{"root", "  root  ", "\troot\n"} {
		resp, err := svc.Auth.Login(ctx, models.RoleAdmin, dto.LoginRequest{Username: username, Password: "secret"})
		if err != nil {
			t.Fatalf("Login(%q): %v", username, err)
		}
		if resp.Token.AccessToken != "token-admin-"+admin.ID {
			t.Errorf("Login(%q) token = %q", username, resp.Token.AccessToken)
		}
	}

	_, err = svc.Auth.Login(ctx, models.RoleAdmin, dto.LoginRequest{Username: "   ", Password: "secret"})
	assertKind(t, err, errValidation)
}

// editingStore renames a student right after it is read for login, the way
// an admin edit racing the login would.
type editingStore struct {
	repositories.Store
	rename string
}

func (s *editingStore) Students() repositories.StudentRepository {
	return editingStudents{StudentRepository: s.Store.Students(), rename: s.rename}
}

type editingStudents struct {
	repositories.StudentRepository
	rename string
}

func (r editingStudents) GetByUsername(ctx context.Context, username string) (*models.Student, error) {
	st, err := r.StudentRepository.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	edited := *st
	edited.Name = r.rename
	if err := r.StudentRepository.Update(ctx, &edited); err != nil {
		return nil, err
	}
	return st, nil
}

func TestHashUpgradeKeepsConcurrentEdits(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	cs := mustDepartment(t, svc, "CS", 1)
	alan := mustStudent(t, svc, "alan", cs.ID, 1)

	login := NewAuthService(&editingStore{Store: store, rename: "Alan Turing"}, stubTokens{}, zerolog.Nop())

	auth.BcryptCost = bcrypt.MinCost + 1
	defer func() { auth.BcryptCost = bcrypt.MinCost }()

	if _, err := login.Login(ctx, models.RoleStudent, dto.LoginRequest{Username: "alan", Password: "secret"}); err != nil {
		t.Fatal(err)
	}
	st, err := store.Students().GetByID(ctx, alan.ID)
	if err != nil {
		t.Fatal(err)
	}
	if st.Name != "Alan Turing" {
		t.Errorf("name = %q, edit made during login was lost", st.Name)
	}
	if cost, _ := bcrypt.Cost([]byte(st.PasswordHash)); cost != bcrypt.MinCost+1 {
		t.Errorf("cost after login = %d", cost)
	}
}

func TestUpdatePasswordHashOnlyTouchesHash(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	admin := &models.Admin{ID: "a1", Name: "Root", Username: "root", PasswordHash: "old"}
	if err := store.Admins().Create(ctx, admin); err != nil {
		t.Fatal(err)
	}
	if err := store.Admins().UpdatePasswordHash(ctx, "a1", "new"); err != nil {
		t.Fatal(err)
	}
	got, err := store.Admins().GetByID(ctx, "a1")
	if err != nil {
		t.Fatal(err)
	}
	if got.PasswordHash != "new" || got.Name != "Root" || got.Username != "root" {
		t.Errorf("admin after hash update = %+v", got)
	}
	assertKind(t, storeError(store.Admins().UpdatePasswordHash(ctx, "missing", "x"), "Admin not found", ""), errNotFound)
}
