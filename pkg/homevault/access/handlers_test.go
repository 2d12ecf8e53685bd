package access

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"homevault/pkg/homevault/models"
	"homevault/pkg/homevault/shares"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	handler := NewHandler(db, logger)
	handler.RegisterRoutes(r)
	return r
}

func createOwnerAndNote(t *testing.T, db *gorm.DB) (models.User, models.Note) {
	user := models.User{Email: "owner@example.com", PasswordHash: "x", Name: "Owner", SystemRole: models.SystemRoleUser}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	note := models.Note{OwnerID: user.ID, Title: "Shared note", Body: "contents"}
	if err := db.Create(&note).Error; err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}
	return user, note
}

func fetch(router *gin.Engine, link *models.ShareLink, password string) *httptest.ResponseRecorder {
	query := url.Values{"token": {link.Token}}
	if password != "" {
		query.Set("password", password)
	}
	req, _ := http.NewRequest("GET", "/shared/"+link.ShareID+"?"+query.Encode(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestResolveGrantsAndCounts(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user, note := createOwnerAndNote(t, db)

	registry := shares.NewRegistry(db, "http://localhost:8080")
	link, _ := registry.Create(user.ID, note.ID, models.ItemTypeNote, shares.CreateOptions{})

	resp := fetch(router, link, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		ItemType    string          `json:"item_type"`
		AccessLevel string          `json:"access_level"`
		Item        json.RawMessage `json:"item"`
	}
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body.ItemType != "note" {
		t.Errorf("Expected item_type note, got %q", body.ItemType)
	}
	if body.AccessLevel != "view" {
		t.Errorf("Expected access_level view, got %q", body.AccessLevel)
	}

	var got models.ShareLink
	db.Where("share_id = ?", link.ShareID).First(&got)
	if got.Views != 1 {
		t.Errorf("Expected 1 view after access, got %d", got.Views)
	}
}

func TestResolveBadTokenLooksLikeNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user, note := createOwnerAndNote(t, db)

	registry := shares.NewRegistry(db, "http://localhost:8080")
	link, _ := registry.Create(user.ID, note.ID, models.ItemTypeNote, shares.CreateOptions{})

	req, _ := http.NewRequest("GET", "/shared/"+link.ShareID+"?token=wrong", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for a bad token, got %d", resp.Code)
	}

	var got models.ShareLink
	db.Where("share_id = ?", link.ShareID).First(&got)
	if got.Views != 0 {
		t.Errorf("Denied access must not count views, got %d", got.Views)
	}
}

func TestResolveUnknownShareID(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/shared/nonexistent?token=x", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestResolveRevokedGone(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user, note := createOwnerAndNote(t, db)

	registry := shares.NewRegistry(db, "http://localhost:8080")
	link, _ := registry.Create(user.ID, note.ID, models.ItemTypeNote, shares.CreateOptions{})
	registry.Revoke(link.ShareID, user.ID)

	resp := fetch(router, link, "")
	if resp.Code != http.StatusGone {
		t.Errorf("Expected status 410 for a revoked link, got %d", resp.Code)
	}

	var body struct {
		Reason string `json:"reason"`
	}
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body.Reason != string(shares.ReasonRevoked) {
		t.Errorf("Expected reason REVOKED, got %q", body.Reason)
	}
}

func TestResolveExpiredGone(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user, note := createOwnerAndNote(t, db)

	expiry := time.Now().Add(-time.Minute)
	registry := shares.NewRegistry(db, "http://localhost:8080")
	link, _ := registry.Create(user.ID, note.ID, models.ItemTypeNote, shares.CreateOptions{Expiry: &expiry})

	resp := fetch(router, link, "")
	if resp.Code != http.StatusGone {
		t.Errorf("Expected status 410 for an expired link, got %d", resp.Code)
	}
}

func TestResolvePasswordFlow(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user, note := createOwnerAndNote(t, db)

	registry := shares.NewRegistry(db, "http://localhost:8080")
	link, _ := registry.Create(user.ID, note.ID, models.ItemTypeNote, shares.CreateOptions{Password: "hunter2"})

	resp := fetch(router, link, "")
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without password, got %d", resp.Code)
	}

	resp = fetch(router, link, "wrong")
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 with wrong password, got %d", resp.Code)
	}

	resp = fetch(router, link, "hunter2")
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200 with correct password, got %d: %s", resp.Code, resp.Body.String())
	}

	// Only the successful attempt counts
	var got models.ShareLink
	db.Where("share_id = ?", link.ShareID).First(&got)
	if got.Views != 1 {
		t.Errorf("Expected 1 view, got %d", got.Views)
	}
}

func TestResolveAlbumIncludesPhotos(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user, _ := createOwnerAndNote(t, db)

	album := models.Album{OwnerID: user.ID, Name: "Garden"}
	db.Create(&album)
	db.Create(&models.Photo{OwnerID: user.ID, AlbumID: &album.ID, Caption: "Tomatoes"})

	registry := shares.NewRegistry(db, "http://localhost:8080")
	link, _ := registry.Create(user.ID, album.ID, models.ItemTypeAlbum, shares.CreateOptions{})

	resp := fetch(router, link, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Item models.Album `json:"item"`
	}
	json.Unmarshal(resp.Body.Bytes(), &body)
	if len(body.Item.Photos) != 1 {
		t.Errorf("Expected album payload to include its photo, got %d", len(body.Item.Photos))
	}
}

func TestResolveItemDeletedAfterShare(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user, note := createOwnerAndNote(t, db)

	registry := shares.NewRegistry(db, "http://localhost:8080")
	link, _ := registry.Create(user.ID, note.ID, models.ItemTypeNote, shares.CreateOptions{})

	db.Delete(&note)

	resp := fetch(router, link, "")
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 when the item is gone, got %d", resp.Code)
	}
}
