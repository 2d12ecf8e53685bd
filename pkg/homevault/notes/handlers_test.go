package notes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/models"
)

var testIssuer = auth.NewTokenIssuer("test-secret", time.Hour)

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
	user := models.User{Email: email, PasswordHash: hash, Name: "Test User", SystemRole: models.SystemRoleUser}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	api := r.Group("/api")
	api.Use(auth.Middleware(testIssuer))
	handler.RegisterRoutes(api)
	return r
}

func doRequest(router *gin.Engine, method, path string, body interface{}, user models.User) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req, _ := http.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	token, _ := testIssuer.Generate(user.ID, user.Email, string(user.SystemRole))
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateNoteWithTags(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	resp := doRequest(router, "POST", "/api/notes", map[string]interface{}{
		"title": "Groceries",
		"body":  "milk, eggs",
		"tags":  []string{"shopping", "weekly"},
	}, user)

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var note models.Note
	json.Unmarshal(resp.Body.Bytes(), &note)
	if len(note.Tags) != 2 {
		t.Errorf("Expected 2 tags, got %d", len(note.Tags))
	}

	// Reusing a tag name must not create a duplicate
	doRequest(router, "POST", "/api/notes", map[string]interface{}{
		"title": "Another",
		"tags":  []string{"shopping"},
	}, user)

	var tagCount int64
	db.Model(&models.Tag{}).Where("owner_id = ? AND name = ?", user.ID, "shopping").Count(&tagCount)
	if tagCount != 1 {
		t.Errorf("Expected tag to be reused, found %d rows", tagCount)
	}
}

func TestListNotesPinnedFirst(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	db.Create(&models.Note{OwnerID: user.ID, Title: "old unpinned"})
	db.Create(&models.Note{OwnerID: user.ID, Title: "pinned", IsPinned: true})
	db.Create(&models.Note{OwnerID: user.ID, Title: "new unpinned"})

	resp := doRequest(router, "GET", "/api/notes", nil, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var notes []models.Note
	json.Unmarshal(resp.Body.Bytes(), &notes)
	if len(notes) != 3 {
		t.Fatalf("Expected 3 notes, got %d", len(notes))
	}
	if notes[0].Title != "pinned" {
		t.Errorf("Expected pinned note first, got %q", notes[0].Title)
	}
}

func TestListNotesFilterByTag(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	doRequest(router, "POST", "/api/notes", map[string]interface{}{
		"title": "Tagged", "tags": []string{"work"},
	}, user)
	doRequest(router, "POST", "/api/notes", map[string]interface{}{
		"title": "Untagged",
	}, user)

	resp := doRequest(router, "GET", "/api/notes?tag=work", nil, user)
	var notes []models.Note
	json.Unmarshal(resp.Body.Bytes(), &notes)
	if len(notes) != 1 || notes[0].Title != "Tagged" {
		t.Errorf("Expected only the tagged note, got %d", len(notes))
	}
}

func TestNotesScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	note := models.Note{OwnerID: owner.ID, Title: "Private"}
	db.Create(&note)

	resp := doRequest(router, "GET", fmt.Sprintf("/api/notes/%d", note.ID), nil, other)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for foreign note, got %d", resp.Code)
	}

	resp = doRequest(router, "GET", "/api/notes", nil, other)
	var notes []models.Note
	json.Unmarshal(resp.Body.Bytes(), &notes)
	if len(notes) != 0 {
		t.Errorf("Expected empty list for other user, got %d", len(notes))
	}
}

func TestUpdateNoteReplacesTags(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	createResp := doRequest(router, "POST", "/api/notes", map[string]interface{}{
		"title": "Note", "tags": []string{"a", "b"},
	}, user)
	var note models.Note
	json.Unmarshal(createResp.Body.Bytes(), &note)

	resp := doRequest(router, "PUT", fmt.Sprintf("/api/notes/%d", note.ID), map[string]interface{}{
		"tags": []string{"c"},
	}, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var updated models.Note
	json.Unmarshal(resp.Body.Bytes(), &updated)
	if len(updated.Tags) != 1 || updated.Tags[0].Name != "c" {
		t.Errorf("Expected tags replaced with [c], got %v", updated.Tags)
	}
}

func TestDeleteNote(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	note := models.Note{OwnerID: user.ID, Title: "Doomed"}
	db.Create(&note)

	resp := doRequest(router, "DELETE", fmt.Sprintf("/api/notes/%d", note.ID), nil, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	resp = doRequest(router, "GET", fmt.Sprintf("/api/notes/%d", note.ID), nil, user)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", resp.Code)
	}
}
