package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mindarch/studyplan/internal/config"
	"github.com/mindarch/studyplan/internal/domain/plan"
	"github.com/mindarch/studyplan/internal/domain/user"
	"github.com/mindarch/studyplan/internal/pkg/errors"
	"github.com/mindarch/studyplan/migrations"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db, migrations.GetFS()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	u := &user.User{Username: "alice", PasswordHash: "hashed"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if u.ID == 0 {
		t.Error("Create() did not assign an ID")
	}

	byID, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if byID.Username != "alice" || byID.PasswordHash != "hashed" {
		t.Errorf("GetByID() = %+v", byID)
	}

	byName, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if byName.ID != u.ID {
		t.Errorf("GetByUsername() ID = %v, want %v", byName.ID, u.ID)
	}

	if _, err := repo.GetByUsername(ctx, "Alice"); err == nil {
		t.Error("GetByUsername() is case-sensitive; lookup with different case should fail")
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	first := &user.User{Username: "bob", PasswordHash: "hash-one"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err := repo.Create(ctx, &user.User{Username: "bob", PasswordHash: "hash-two"})
	if err == nil {
		t.Fatal("Create() with duplicate username expected error, got nil")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeConflict {
		t.Errorf("Create() error = %v, want conflict", err)
	}

	// First record untouched
	got, err := repo.GetByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if got.ID != first.ID || got.PasswordHash != "hash-one" {
		t.Errorf("GetByUsername() = %+v, want the original record", got)
	}
}

func TestPlanRepository_RoundTrip(t *testing.T) {
	repo := NewPlanRepository(openTestDB(t))
	ctx := context.Background()

	doc := &plan.Document{
		Overview: "Steady progress.",
		Schedule: []plan.Day{
			{
				DayOffset: 0,
				Theme:     "Kickoff",
				Tasks: []plan.Task{
					{Title: "Setup", Description: "Install tools", Minutes: 20},
					{Title: "Read", Description: "Introduction", Minutes: 40},
				},
			},
		},
	}

	if err := repo.Save(ctx, 1, doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("Get() = %+v, want %+v", got, doc)
	}
}

func TestPlanRepository_OverwriteKeepsOneRow(t *testing.T) {
	db := openTestDB(t)
	repo := NewPlanRepository(db)
	ctx := context.Background()

	first := &plan.Document{Overview: "first", Schedule: []plan.Day{}}
	second := &plan.Document{Overview: "second", Schedule: []plan.Day{}}

	if err := repo.Save(ctx, 1, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := repo.Save(ctx, 1, second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Overview != "second" {
		t.Errorf("Get() overview = %q, want %q", got.Overview, "second")
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM plans WHERE user_id = ?", 1).Scan(&count); err != nil {
		t.Fatalf("count query error = %v", err)
	}
	if count != 1 {
		t.Errorf("plan rows = %d, want 1", count)
	}
}

func TestPlanRepository_GetMissing(t *testing.T) {
	repo := NewPlanRepository(openTestDB(t))

	got, err := repo.Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil", got)
	}
}

func TestPlanRepository_PlansAreIndependentPerUser(t *testing.T) {
	repo := NewPlanRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Save(ctx, 1, &plan.Document{Overview: "user one", Schedule: []plan.Day{}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := repo.Save(ctx, 2, &plan.Document{Overview: "user two", Schedule: []plan.Day{}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	one, err := repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	two, err := repo.Get(ctx, 2)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if one.Overview != "user one" || two.Overview != "user two" {
		t.Errorf("plans crossed users: %q / %q", one.Overview, two.Overview)
	}
}
