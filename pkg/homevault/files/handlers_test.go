package files

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

func TestCreateFileInFolder(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	folderResp := doRequest(router, "POST", "/api/folders", map[string]string{"name": "Taxes"}, user)
	if folderResp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201 for folder, got %d", folderResp.Code)
	}
	var folder models.Folder
	json.Unmarshal(folderResp.Body.Bytes(), &folder)

	resp := doRequest(router, "POST", "/api/files", map[string]interface{}{
		"name":      "w2.pdf",
		"folder_id": folder.ID,
		"size":      48213,
		"mime_type": "application/pdf",
	}, user)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestDeleteFolderOrphansContents(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	folder := models.Folder{OwnerID: user.ID, Name: "Parent"}
	db.Create(&folder)
	child := models.Folder{OwnerID: user.ID, Name: "Child", ParentID: &folder.ID}
	db.Create(&child)
	file := models.File{OwnerID: user.ID, Name: "doc.pdf", FolderID: &folder.ID}
	db.Create(&file)

	resp := doRequest(router, "DELETE", fmt.Sprintf("/api/folders/%d", folder.ID), nil, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var gotFile models.File
	db.First(&gotFile, file.ID)
	if gotFile.FolderID != nil {
		t.Error("Expected contained file to move to the root")
	}

	var gotChild models.Folder
	db.First(&gotChild, child.ID)
	if gotChild.ParentID != nil {
		t.Error("Expected child folder to move to the root")
	}
}

func TestListFilesByFolder(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "user@example.com")

	folder := models.Folder{OwnerID: user.ID, Name: "Taxes"}
	db.Create(&folder)
	db.Create(&models.File{OwnerID: user.ID, Name: "w2.pdf", FolderID: &folder.ID})
	db.Create(&models.File{OwnerID: user.ID, Name: "loose.txt"})

	resp := doRequest(router, "GET", fmt.Sprintf("/api/files?folder_id=%d", folder.ID), nil, user)
	var listed []models.File
	json.Unmarshal(resp.Body.Bytes(), &listed)
	if len(listed) != 1 || listed[0].Name != "w2.pdf" {
		t.Errorf("Expected only the foldered file, got %d", len(listed))
	}
}

func TestCreateFileForeignFolder(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	folder := models.Folder{OwnerID: owner.ID, Name: "Private"}
	db.Create(&folder)

	resp := doRequest(router, "POST", "/api/files", map[string]interface{}{
		"name":      "sneaky.txt",
		"folder_id": folder.ID,
	}, other)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for foreign folder, got %d", resp.Code)
	}
}
