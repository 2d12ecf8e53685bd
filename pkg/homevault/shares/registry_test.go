package shares

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	hash, _ := auth.HashPassword("password123")
	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
		SystemRole:   models.SystemRoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestNote(t *testing.T, db *gorm.DB, ownerID uint, title string) models.Note {
	note := models.Note{OwnerID: ownerID, Title: title, Body: "body"}
	if err := db.Create(&note).Error; err != nil {
		t.Fatalf("Failed to create test note: %v", err)
	}
	return note
}

func TestCreateShareLink(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db, "http://localhost:8080")
	user := createTestUser(t, db, "owner@example.com")
	note := createTestNote(t, db, user.ID, "Shared note")

	link, err := registry.Create(user.ID, note.ID, models.ItemTypeNote, CreateOptions{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if link.ShareID == "" {
		t.Error("Expected a generated share id")
	}
	if link.Token == "" {
		t.Error("Expected a generated token")
	}
	if link.AccessLevel != models.AccessLevelView {
		t.Errorf("Expected default access level view, got %q", link.AccessLevel)
	}
	if link.Revoked {
		t.Error("New link must not be revoked")
	}
	if link.Views != 0 {
		t.Errorf("New link must have zero views, got %d", link.Views)
	}
}

func TestCreateShareLinkInvalidItemType(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db, "http://localhost:8080")
	user := createTestUser(t, db, "owner@example.com")

	_, err := registry.Create(user.ID, 1, models.ItemType("spreadsheet"), CreateOptions{})
	if err == nil {
		t.Fatal("Expected error for unknown item type")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("Expected ValidationError, got %T", err)
	}
}

func TestCreateShareLinkItemNotOwned(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db, "http://localhost:8080")
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	note := createTestNote(t, db, owner.ID, "Private note")

	_, err := registry.Create(other.ID, note.ID, models.ItemTypeNote, CreateOptions{})
	if err == nil {
		t.Fatal("Expected error for item owned by someone else")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("Expected ValidationError, got %T", err)
	}
}

func TestCreateShareLinkWithPassword(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db, "http://localhost:8080")
	user := createTestUser(t, db, "owner@example.com")
	note := createTestNote(t, db, user.ID, "Protected note")

	link, err := registry.Create(user.ID, note.ID, models.ItemTypeNote, CreateOptions{Password: "secret"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !link.PasswordProtected {
		t.Error("Expected link to be password protected")
	}
	if link.PasswordHash == "secret" || link.PasswordHash == "" {
		t.Error("Password must be stored hashed")
	}
}

func TestListByOwnerCreationOrder(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db, "http://localhost:8080")
	user := createTestUser(t, db, "owner@example.com")

	var created []string
	for i := 0; i < 3; i++ {
		note := createTestNote(t, db, user.ID, "note")
		link, err := registry.Create(user.ID, note.ID, models.ItemTypeNote, CreateOptions{})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		created = append(created, link.ShareID)
	}

	links, err := registry.ListByOwner(user.ID)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(links) != 3 {
		t.Fatalf("Expected 3 links, got %d", len(links))
	}
	for i, link := range links {
		if link.ShareID != created[i] {
			t.Errorf("Position %d: expected %s, got %s", i, created[i], link.ShareID)
		}
	}
}

func TestUpdateShareLink(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db, "http://localhost:8080")
	user := createTestUser(t, db, "owner@example.com")
	note := createTestNote(t, db, user.ID, "note")

	link, _ := registry.Create(user.ID, note.ID, models.ItemTypeNote, CreateOptions{})

	expiry := time.Now().Add(24 * time.Hour)
	edit := models.AccessLevelEdit
	updated, err := registry.Update(link.ShareID, user.ID, UpdatePatch{
		Expiry:      &expiry,
		AccessLevel: &edit,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Expiry == nil || !updated.Expiry.Equal(expiry) {
		t.Error("Expected expiry to be set")
	}
	if updated.AccessLevel != models.AccessLevelEdit {
		t.Errorf("Expected access level edit, got %q", updated.AccessLevel)
	}
	if updated.ShareID != link.ShareID || updated.Token != link.Token {
		t.Error("Share id and token must never change on update")
	}

	// Clearing the expiry is distinct from leaving it untouched
	updated, err = registry.Update(link.ShareID, user.ID, UpdatePatch{ClearExpiry: true})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Expiry != nil {
		t.Error("Expected expiry to be cleared")
	}
}

func TestUpdateShareLinkNotOwner(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db, "http://localhost:8080")
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	note := createTestNote(t, db, owner.ID, "note")

	link, _ := registry.Create(owner.ID, note.ID, models.ItemTypeNote, CreateOptions{})

	_, err := registry.Update(link.ShareID, other.ID, UpdatePatch{ClearExpiry: true})
	if err == nil {
		t.Fatal("Expected error for non-owner update")
	}
	if _, ok := err.(*ForbiddenError); !ok {
		t.Errorf("Expected ForbiddenError, got %T", err)
	}
}

func TestUpdateRevokedShareLink(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db, "http://localhost:8080")
	user := createTestUser(t, db, "owner@example.com")
	note := createTestNote(t, db, user.ID, "note")

	link, _ := registry.Create(user.ID, note.ID, models.ItemTypeNote, CreateOptions{})
	if err := registry.Revoke(link.ShareID, user.ID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	_, err := registry.Update(link.ShareID, user.ID, UpdatePatch{ClearExpiry: true})
	if err == nil {
		t.Fatal("Expected error updating a revoked link")
	}
	if _, ok := err.(*ConflictError); !ok {
		t.Errorf("Expected ConflictError, got %T", err)
	}
}

func TestRevokeIdempotent(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db, "http://localhost:8080")
	user := createTestUser(t, db, "owner@example.com")
	note := createTestNote(t, db, user.ID, "note")

	link, _ := registry.Create(user.ID, note.ID, models.ItemTypeNote, CreateOptions{})

	if err := registry.Revoke(link.ShareID, user.ID); err != nil {
		t.Fatalf("First revoke failed: %v", err)
	}
	if err := registry.Revoke(link.ShareID, user.ID); err != nil {
		t.Fatalf("Second revoke must be a no-op, got: %v", err)
	}

	got, err := registry.Get(link.ShareID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.Revoked {
		t.Error("Link must stay revoked")
	}
}

func TestDeleteShareLinkCascadesEvents(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db, "http://localhost:8080")
	analytics := NewAnalytics(db)
	user := createTestUser(t, db, "owner@example.com")
	note := createTestNote(t, db, user.ID, "note")

	link, _ := registry.Create(user.ID, note.ID, models.ItemTypeNote, CreateOptions{})
	if err := analytics.RecordAccess(link.ShareID, "10.0.0.1", "curl/8"); err != nil {
		t.Fatalf("RecordAccess failed: %v", err)
	}

	if err := registry.Delete(link.ShareID, user.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := registry.Get(link.ShareID); err == nil {
		t.Error("Expected link to be gone")
	}
	var eventCount int64
	db.Model(&models.AccessEvent{}).Where("share_link_id = ?", link.ID).Count(&eventCount)
	if eventCount != 0 {
		t.Errorf("Expected access events to be deleted, found %d", eventCount)
	}
}

func TestPublicURLDeterministic(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db, "https://vault.example.com")
	user := createTestUser(t, db, "owner@example.com")
	note := createTestNote(t, db, user.ID, "note")

	link, _ := registry.Create(user.ID, note.ID, models.ItemTypeNote, CreateOptions{})

	first := registry.PublicURL(link)
	second := registry.PublicURL(link)
	if first != second {
		t.Errorf("Expected stable URL, got %q then %q", first, second)
	}

	want := "https://vault.example.com/shared/" + link.ShareID + "?token=" + link.Token
	if first != want {
		t.Errorf("Expected %q, got %q", want, first)
	}
}
