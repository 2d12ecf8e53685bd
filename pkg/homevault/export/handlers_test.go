package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
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

func TestImportPinboardBookmarks(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	resp := doRequest(router, "POST", "/api/import", ImportRequest{
		Bookmarks: []PinboardBookmark{
			{Href: "https://go.dev/blog/", Description: "The Go Blog", Extended: "notes", Time: "2024-03-01T12:00:00Z", ToRead: "yes"},
			{Href: "https://sqlite.org", Description: "SQLite", ToRead: "no"},
		},
	}, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result ImportResult
	json.Unmarshal(resp.Body.Bytes(), &result)
	if result.Imported != 2 || result.Skipped != 0 {
		t.Errorf("Expected 2 imported, got %+v", result)
	}

	var bookmark models.Bookmark
	if err := db.Where("url = ?", "https://go.dev/blog/").First(&bookmark).Error; err != nil {
		t.Fatalf("Imported bookmark not found: %v", err)
	}
	if !bookmark.IsUnread {
		t.Error("Expected toread=yes to map to unread")
	}
	if bookmark.CreatedAt.UTC().Format(time.RFC3339) != "2024-03-01T12:00:00Z" {
		t.Errorf("Expected pinboard time preserved, got %v", bookmark.CreatedAt)
	}
}

func TestImportSkipsBadEntries(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	resp := doRequest(router, "POST", "/api/import", ImportRequest{
		Bookmarks: []PinboardBookmark{
			{Description: "no href"},
			{Href: "https://example.com", Time: "yesterday"},
			{Href: "https://go.dev"},
		},
	}, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var result ImportResult
	json.Unmarshal(resp.Body.Bytes(), &result)
	if result.Imported != 1 || result.Skipped != 2 {
		t.Errorf("Expected 1 imported and 2 skipped, got %+v", result)
	}
	if len(result.Errors) != 2 {
		t.Errorf("Expected 2 error entries, got %d", len(result.Errors))
	}
}

func TestImportIntoForeignFolder(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	folder := models.BookmarkFolder{OwnerID: owner.ID, Name: "Private"}
	db.Create(&folder)

	resp := doRequest(router, "POST", "/api/import", ImportRequest{
		FolderID:  &folder.ID,
		Bookmarks: []PinboardBookmark{{Href: "https://example.com"}},
	}, other)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for foreign folder, got %d", resp.Code)
	}
}

func TestExportRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	doRequest(router, "POST", "/api/import", ImportRequest{
		Bookmarks: []PinboardBookmark{
			{Href: "https://go.dev/blog/", Description: "The Go Blog", ToRead: "yes"},
		},
	}, user)

	resp := doRequest(router, "GET", "/api/export", nil, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var exported []PinboardBookmark
	json.Unmarshal(resp.Body.Bytes(), &exported)
	if len(exported) != 1 {
		t.Fatalf("Expected 1 exported bookmark, got %d", len(exported))
	}
	if exported[0].Href != "https://go.dev/blog/" || exported[0].ToRead != "yes" {
		t.Errorf("Export did not round-trip: %+v", exported[0])
	}
}

func TestExportFolderFilterAndDownload(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	folder := models.BookmarkFolder{OwnerID: user.ID, Name: "Reading"}
	db.Create(&folder)
	db.Create(&models.Bookmark{OwnerID: user.ID, URL: "https://go.dev", FolderID: &folder.ID})
	db.Create(&models.Bookmark{OwnerID: user.ID, URL: "https://sqlite.org"})

	resp := doRequest(router, "GET", fmt.Sprintf("/api/export?folder_id=%d&download=true", folder.ID), nil, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var exported []PinboardBookmark
	json.Unmarshal(resp.Body.Bytes(), &exported)
	if len(exported) != 1 || exported[0].Href != "https://go.dev" {
		t.Errorf("Expected only the foldered bookmark, got %d", len(exported))
	}

	disposition := resp.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "attachment") {
		t.Errorf("Expected attachment disposition, got %q", disposition)
	}
}
