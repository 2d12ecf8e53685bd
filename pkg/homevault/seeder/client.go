package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is an HTTP client for a running homevault instance. It speaks
// the same JSON API the web frontend does; each call carries a context
// and a bearer token for the acting user.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a seeding client for the given base URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// created is the minimal shape of a resource creation response
type created struct {
	ID uint `json:"id"`
}

// authResponse is the minimal shape of a register/login response
type authResponse struct {
	Token string `json:"token"`
}

// do sends one JSON request and decodes the response into out (when
// out is non-nil). Non-2xx statuses become *APIError; transport and
// decoding failures become *ExternalDependencyError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &ExternalDependencyError{Op: "encode " + path, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &ExternalDependencyError{Op: "build request " + path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ExternalDependencyError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(resp.Body)
		message := string(raw)
		if json.Unmarshal(raw, &errBody) == nil && errBody.Error != "" {
			message = errBody.Error
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &ExternalDependencyError{Op: "decode " + path, Err: err}
		}
	}
	return nil
}

// Register creates a user account and returns its token
func (c *Client) Register(ctx context.Context, email, password, name string) (string, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Login authenticates an existing account and returns its token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// CreateTag creates a tag for the token's user
func (c *Client) CreateTag(ctx context.Context, token, name string) (uint, error) {
	var resp created
	err := c.do(ctx, http.MethodPost, "/api/tags", token, map[string]string{"name": name}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreateNote creates a note
func (c *Client) CreateNote(ctx context.Context, token string, note NoteFixture) (uint, error) {
	var resp created
	err := c.do(ctx, http.MethodPost, "/api/notes", token, map[string]interface{}{
		"title":     note.Title,
		"body":      note.Body,
		"is_pinned": note.IsPinned,
		"tags":      note.Tags,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreateBookmarkFolder creates a bookmark folder
func (c *Client) CreateBookmarkFolder(ctx context.Context, token, name string) (uint, error) {
	var resp created
	err := c.do(ctx, http.MethodPost, "/api/bookmark-folders", token, map[string]string{"name": name}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreateBookmark creates a bookmark
func (c *Client) CreateBookmark(ctx context.Context, token string, bookmark BookmarkFixture, folderID *uint) (uint, error) {
	var resp created
	err := c.do(ctx, http.MethodPost, "/api/bookmarks", token, map[string]interface{}{
		"url":         bookmark.URL,
		"title":       bookmark.Title,
		"description": bookmark.Description,
		"folder_id":   folderID,
		"is_unread":   bookmark.IsUnread,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreatePasswordEntry stores a credential
func (c *Client) CreatePasswordEntry(ctx context.Context, token string, entry PasswordFixture) (uint, error) {
	var resp created
	err := c.do(ctx, http.MethodPost, "/api/passwords", token, map[string]string{
		"site":       entry.Site,
		"username":   entry.Username,
		"ciphertext": entry.Ciphertext,
		"notes":      entry.Notes,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreateWalletCard stores a card record
func (c *Client) CreateWalletCard(ctx context.Context, token string, card WalletCardFixture) (uint, error) {
	var resp created
	err := c.do(ctx, http.MethodPost, "/api/wallet-cards", token, map[string]interface{}{
		"label":      card.Label,
		"holder":     card.Holder,
		"last_four":  card.LastFour,
		"ciphertext": card.Ciphertext,
		"expires_mm": card.ExpiresMM,
		"expires_yy": card.ExpiresYY,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreateMemo creates a voice memo
func (c *Client) CreateMemo(ctx context.Context, token string, memo MemoFixture) (uint, error) {
	var resp created
	err := c.do(ctx, http.MethodPost, "/api/memos", token, map[string]interface{}{
		"title":        memo.Title,
		"duration_sec": memo.DurationSec,
		"storage_path": memo.StoragePath,
		"transcript":   memo.Transcript,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreateFolder creates a file folder
func (c *Client) CreateFolder(ctx context.Context, token, name string) (uint, error) {
	var resp created
	err := c.do(ctx, http.MethodPost, "/api/folders", token, map[string]string{"name": name}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreateFile registers file metadata
func (c *Client) CreateFile(ctx context.Context, token string, file FileFixture, folderID *uint) (uint, error) {
	var resp created
	err := c.do(ctx, http.MethodPost, "/api/files", token, map[string]interface{}{
		"name":         file.Name,
		"folder_id":    folderID,
		"size":         file.Size,
		"mime_type":    file.MimeType,
		"storage_path": file.StoragePath,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreateAlbum creates a photo album
func (c *Client) CreateAlbum(ctx context.Context, token string, album AlbumFixture) (uint, error) {
	var resp created
	err := c.do(ctx, http.MethodPost, "/api/albums", token, map[string]string{
		"name":        album.Name,
		"description": album.Description,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreatePhoto registers photo metadata
func (c *Client) CreatePhoto(ctx context.Context, token string, photo PhotoFixture, albumID *uint) (uint, error) {
	var resp created
	err := c.do(ctx, http.MethodPost, "/api/photos", token, map[string]interface{}{
		"album_id":     albumID,
		"caption":      photo.Caption,
		"storage_path": photo.StoragePath,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreateResume creates a resume
func (c *Client) CreateResume(ctx context.Context, token string, resume ResumeFixture) (uint, error) {
	var resp created
	err := c.do(ctx, http.MethodPost, "/api/resumes", token, map[string]interface{}{
		"title":      resume.Title,
		"content":    resume.Content,
		"is_primary": resume.IsPrimary,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreateShareLink creates a share link for an already-created item
func (c *Client) CreateShareLink(ctx context.Context, token string, itemID uint, share ShareFixture) (string, error) {
	body := map[string]interface{}{
		"item_id":   itemID,
		"item_type": share.ItemType,
	}
	if share.Password != "" {
		body["password"] = share.Password
	}
	if share.AccessLevel != "" {
		body["access_level"] = share.AccessLevel
	}
	if share.ExpiresInDays > 0 {
		body["expiry"] = time.Now().AddDate(0, 0, share.ExpiresInDays).UTC().Format(time.RFC3339)
	}

	var resp struct {
		ShareID string `json:"share_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/share-links", token, body, &resp); err != nil {
		return "", err
	}
	if resp.ShareID == "" {
		return "", &ExternalDependencyError{Op: "create share link", Err: fmt.Errorf("empty share_id in response")}
	}
	return resp.ShareID, nil
}
