package note

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/notevault/core/internal/models"
	"github.com/notevault/core/internal/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *models.UserModel, *models.UserModel) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.UserModel{}, &models.NoteModel{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	u1 := &models.UserModel{Email: "a@example.com", Name: "A", Password: "hash"}
	u2 := &models.UserModel{Email: "b@example.com", Name: "B", Password: "hash"}
	for _, u := range []*models.UserModel{u1, u2} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("create user: %v", err)
		}
	}
	return NewService(db), u1, u2
}

func TestCreateAndGet(t *testing.T) {
	svc, u1, u2 := newTestService(t)

	n, err := svc.Create(u1.ID, "# hello")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if n.ID == "" {
		t.Error("note ID not assigned")
	}

	got, err := svc.Get(n.ID, u1.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.Content != "# hello" {
		t.Errorf("Get() = %+v", got)
	}

	// A foreign note reads as missing.
	got, err = svc.Get(n.ID, u2.ID)
	if err != nil {
		t.Fatalf("Get() foreign error = %v", err)
	}
	if got != nil {
		t.Error("Get() leaked a foreign note")
	}
}

func TestGetMissing(t *testing.T) {
	svc, u1, _ := newTestService(t)

	got, err := svc.Get("no-such-id", u1.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil", got)
	}
}

func TestUpdateScoped(t *testing.T) {
	svc, u1, u2 := newTestService(t)

	n, err := svc.Create(u1.ID, "before")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := svc.Update(n.ID, u1.ID, "after")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated == nil || updated.Content != "after" {
		t.Errorf("Update() = %+v", updated)
	}

	// Foreign update reads as missing and changes nothing.
	updated, err = svc.Update(n.ID, u2.ID, "hijacked")
	if err != nil {
		t.Fatalf("Update() foreign error = %v", err)
	}
	if updated != nil {
		t.Error("Update() modified a foreign note")
	}
	got, _ := svc.Get(n.ID, u1.ID)
	if got.Content != "after" {
		t.Errorf("content = %q after foreign update", got.Content)
	}
}

func TestDeleteScopedSilent(t *testing.T) {
	svc, u1, u2 := newTestService(t)

	n, err := svc.Create(u1.ID, "content")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(n.ID, u2.ID); err != nil {
		t.Fatalf("Delete() foreign error = %v", err)
	}
	if got, _ := svc.Get(n.ID, u1.ID); got == nil {
		t.Fatal("foreign delete removed the note")
	}

	if err := svc.Delete(n.ID, u1.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got, _ := svc.Get(n.ID, u1.ID); got != nil {
		t.Error("note survived delete")
	}

	if err := svc.Delete(n.ID, u1.ID); err != nil {
		t.Fatalf("Delete() repeated error = %v", err)
	}
}

func TestListPagination(t *testing.T) {
	svc, u1, u2 := newTestService(t)

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(u1.ID, "note"); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if _, err := svc.Create(u2.ID, "other"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	notes, page, err := svc.List(u1.ID, pagination.Query{Page: 1, Size: 3})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(notes) != 3 {
		t.Errorf("len = %d, want 3", len(notes))
	}
	if page.Total != 5 || page.TotalPage != 2 || !page.HasNextPage {
		t.Errorf("pagination = %+v", page)
	}

	notes, page, err = svc.List(u1.ID, pagination.Query{Page: 2, Size: 3})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(notes) != 2 || page.HasNextPage {
		t.Errorf("second page: len = %d, pagination = %+v", len(notes), page)
	}
}

func TestDeleteAll(t *testing.T) {
	svc, u1, u2 := newTestService(t)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(u1.ID, "note"); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	other, err := svc.Create(u2.ID, "keep")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.DeleteAll(u1.ID); err != nil {
		t.Fatalf("DeleteAll() error = %v", err)
	}

	notes, page, err := svc.List(u1.ID, pagination.Query{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(notes) != 0 || page.Total != 0 {
		t.Errorf("notes left = %d", len(notes))
	}
	if got, _ := svc.Get(other.ID, u2.ID); got == nil {
		t.Error("other user's note was deleted")
	}
}
