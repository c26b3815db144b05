package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/config"
)

type fakeAdmins struct {
	calls   []dto.CreateAdminRequest
	created bool
	err     error
}

func (f *fakeAdmins) EnsureDefaultAdmin(_ context.Context, req dto.CreateAdminRequest) (bool, error) {
	f.calls = append(f.calls, req)
	return f.created, f.err
}

func seedConfig(password string) *config.Config {
	cfg := &config.Config{}
	cfg.Seed.AdminName = "Administrator"
	cfg.Seed.AdminUsername = "admin"
	cfg.Seed.AdminPassword = password
	return cfg
}

func TestCreateDefaultAdmin(t *testing.T) {
	ctx := context.Background()

	skipped := &fakeAdmins{}
	if err := CreateDefaultAdmin(ctx, skipped, seedConfig(""), zerolog.Nop()); err != nil || len(skipped.calls) != 0 {
		t.Fatalf("without password: err=%v calls=%d", err, len(skipped.calls))
	}

	admins := &fakeAdmins{created: true}
	if err := CreateDefaultAdmin(ctx, admins, seedConfig("changeme"), zerolog.Nop()); err != nil {
		t.Fatal(err)
	}
	if len(admins.calls) != 1 || admins.calls[0].Username != "admin" || admins.calls[0].Password != "changeme" {
		t.Errorf("calls = %+v", admins.calls)
	}

	failing := &fakeAdmins{err: errors.New("store down")}
	if err := CreateDefaultAdmin(ctx, failing, seedConfig("changeme"), zerolog.Nop()); err == nil {
		t.Error("expected the store error")
	}
}
