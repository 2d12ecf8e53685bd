package vault

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

func TestCreatePasswordEntryStoresCiphertextOnly(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	resp := doRequest(router, "POST", "/api/passwords", map[string]string{
		"site":       "github.com",
		"username":   "ada",
		"ciphertext": "djEuYmxvYg==",
	}, user)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var entry models.PasswordEntry
	json.Unmarshal(resp.Body.Bytes(), &entry)
	if entry.Ciphertext != "djEuYmxvYg==" {
		t.Error("Expected ciphertext stored verbatim")
	}
}

func TestCreatePasswordEntryRequiresCiphertext(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	resp := doRequest(router, "POST", "/api/passwords", map[string]string{"site": "github.com"}, user)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without ciphertext, got %d", resp.Code)
	}
}

func TestListPasswordsSearch(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	db.Create(&models.PasswordEntry{OwnerID: user.ID, Site: "github.com", Username: "ada", Ciphertext: "x"})
	db.Create(&models.PasswordEntry{OwnerID: user.ID, Site: "bank.example", Username: "ada", Ciphertext: "y"})

	resp := doRequest(router, "GET", "/api/passwords?q=github", nil, user)
	var entries []models.PasswordEntry
	json.Unmarshal(resp.Body.Bytes(), &entries)
	if len(entries) != 1 || entries[0].Site != "github.com" {
		t.Errorf("Expected search to match one entry, got %d", len(entries))
	}
}

func TestWalletCardValidation(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	resp := doRequest(router, "POST", "/api/wallet-cards", map[string]interface{}{
		"label":      "Visa",
		"last_four":  "12345",
		"ciphertext": "blob",
	}, user)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for 5-digit last_four, got %d", resp.Code)
	}

	resp = doRequest(router, "POST", "/api/wallet-cards", map[string]interface{}{
		"label":      "Visa",
		"last_four":  "4242",
		"ciphertext": "blob",
		"expires_mm": 9,
		"expires_yy": 28,
	}, user)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestVaultScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	entry := models.PasswordEntry{OwnerID: owner.ID, Site: "github.com", Ciphertext: "x"}
	db.Create(&entry)

	resp := doRequest(router, "GET", "/api/passwords", nil, other)
	var entries []models.PasswordEntry
	json.Unmarshal(resp.Body.Bytes(), &entries)
	if len(entries) != 0 {
		t.Errorf("Expected no entries for other user, got %d", len(entries))
	}

	resp = doRequest(router, "DELETE", fmt.Sprintf("/api/passwords/%d", entry.ID), nil, other)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 deleting foreign entry, got %d", resp.Code)
	}
}
