package seeder

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Summary is the outcome of one seeding run
type Summary struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Driver populates a live instance from a fixture. Seeding is best
// effort: a failed item is logged and counted, never fatal, and the
// run always reports a full Summary.
//
// Phases run in a fixed order so that every item's dependencies exist
// before it is attempted: users, then content phases, then share links
// last. A phase starts only after the previous phase has attempted
// every item.
type Driver struct {
	client *Client
	logger *logrus.Logger

	// per-user auth tokens and fixture-key -> created-ID maps,
	// keyed by user email. Owned by this instance.
	tokens map[string]string
	ids    map[string]map[string]uint
}

// NewDriver creates a seed driver
func NewDriver(client *Client, logger *logrus.Logger) *Driver {
	return &Driver{
		client: client,
		logger: logger,
		tokens: make(map[string]string),
		ids:    make(map[string]map[string]uint),
	}
}

// Run seeds the fixture and returns counts for the whole run
func (d *Driver) Run(ctx context.Context, fixture *Fixture) Summary {
	var summary Summary

	d.seedUsers(ctx, fixture, &summary)
	d.seedTags(ctx, fixture, &summary)
	d.seedNotes(ctx, fixture, &summary)
	d.seedBookmarks(ctx, fixture, &summary)
	d.seedPasswords(ctx, fixture, &summary)
	d.seedWalletCards(ctx, fixture, &summary)
	d.seedMemos(ctx, fixture, &summary)
	d.seedFiles(ctx, fixture, &summary)
	d.seedPhotos(ctx, fixture, &summary)
	d.seedResumes(ctx, fixture, &summary)
	d.seedShares(ctx, fixture, &summary)

	d.logger.WithFields(logrus.Fields{
		"created": summary.Created,
		"skipped": summary.Skipped,
		"failed":  summary.Failed,
	}).Info("seeding finished")

	return summary
}

// token returns the auth token for a fixture user, or "" when the
// user phase could not establish one.
func (d *Driver) token(user UserFixture) string {
	return d.tokens[user.Email]
}

// remember stores a created item's ID under its fixture key
func (d *Driver) remember(user UserFixture, key string, id uint) {
	if key == "" {
		return
	}
	if d.ids[user.Email] == nil {
		d.ids[user.Email] = make(map[string]uint)
	}
	d.ids[user.Email][key] = id
}

// lookup resolves a fixture key to a created ID
func (d *Driver) lookup(user UserFixture, key string) (uint, bool) {
	id, ok := d.ids[user.Email][key]
	return id, ok
}

// fail logs one item failure and counts it
func (d *Driver) fail(summary *Summary, err error, kind, label string) {
	summary.Failed++
	d.logger.WithError(err).WithFields(logrus.Fields{
		"kind": kind,
		"item": label,
	}).Warn("failed to seed item")
}

// skip counts an item that was never attempted
func (d *Driver) skip(summary *Summary, kind, label, reason string) {
	summary.Skipped++
	d.logger.WithFields(logrus.Fields{
		"kind":   kind,
		"item":   label,
		"reason": reason,
	}).Info("skipped item")
}

// itemCount is how many content items a user's fixture declares,
// used to count skips when no token could be established.
func itemCount(user UserFixture) int {
	return len(user.Tags) + len(user.Notes) + len(user.Folders) + len(user.Bookmarks) +
		len(user.Passwords) + len(user.WalletCards) + len(user.Memos) +
		len(user.FileFolders) + len(user.Files) + len(user.Albums) + len(user.Photos) +
		len(user.Resumes) + len(user.Shares)
}

// seedUsers establishes an account and token for every fixture user.
// A register conflict falls back to login; when both fail, all of the
// user's later items are skipped up front.
func (d *Driver) seedUsers(ctx context.Context, fixture *Fixture, summary *Summary) {
	for _, user := range fixture.Users {
		token, err := d.client.Register(ctx, user.Email, user.Password, user.Name)
		if err == nil {
			summary.Created++
			d.tokens[user.Email] = token
			continue
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == 409 {
			token, loginErr := d.client.Login(ctx, user.Email, user.Password)
			if loginErr == nil {
				d.logger.WithField("email", user.Email).Info("user exists, logged in")
				summary.Skipped++
				d.tokens[user.Email] = token
				continue
			}
			err = loginErr
		}

		d.fail(summary, err, "user", user.Email)
		summary.Skipped += itemCount(user)
	}
}

func (d *Driver) seedTags(ctx context.Context, fixture *Fixture, summary *Summary) {
	for _, user := range fixture.Users {
		token := d.token(user)
		if token == "" {
			continue
		}
		for _, name := range user.Tags {
			if _, err := d.client.CreateTag(ctx, token, name); err != nil {
				var apiErr *APIError
				if errors.As(err, &apiErr) && apiErr.Status == 409 {
					d.skip(summary, "tag", name, "already exists")
					continue
				}
				d.fail(summary, err, "tag", name)
				continue
			}
			summary.Created++
		}
	}
}

func (d *Driver) seedNotes(ctx context.Context, fixture *Fixture, summary *Summary) {
	for _, user := range fixture.Users {
		token := d.token(user)
		if token == "" {
			continue
		}
		for _, note := range user.Notes {
			id, err := d.client.CreateNote(ctx, token, note)
			if err != nil {
				d.fail(summary, err, "note", note.Title)
				continue
			}
			summary.Created++
			d.remember(user, note.Key, id)
		}
	}
}

func (d *Driver) seedBookmarks(ctx context.Context, fixture *Fixture, summary *Summary) {
	for _, user := range fixture.Users {
		token := d.token(user)
		if token == "" {
			continue
		}
		for _, folder := range user.Folders {
			id, err := d.client.CreateBookmarkFolder(ctx, token, folder.Name)
			if err != nil {
				d.fail(summary, err, "bookmark_folder", folder.Name)
				continue
			}
			summary.Created++
			d.remember(user, folder.Key, id)
		}
		for _, bookmark := range user.Bookmarks {
			var folderID *uint
			if bookmark.FolderKey != "" {
				id, ok := d.lookup(user, bookmark.FolderKey)
				if !ok {
					d.skip(summary, "bookmark", bookmark.URL, "folder was not created")
					continue
				}
				folderID = &id
			}
			id, err := d.client.CreateBookmark(ctx, token, bookmark, folderID)
			if err != nil {
				d.fail(summary, err, "bookmark", bookmark.URL)
				continue
			}
			summary.Created++
			d.remember(user, bookmark.Key, id)
		}
	}
}

func (d *Driver) seedPasswords(ctx context.Context, fixture *Fixture, summary *Summary) {
	for _, user := range fixture.Users {
		token := d.token(user)
		if token == "" {
			continue
		}
		for _, entry := range user.Passwords {
			if _, err := d.client.CreatePasswordEntry(ctx, token, entry); err != nil {
				d.fail(summary, err, "password", entry.Site)
				continue
			}
			summary.Created++
		}
	}
}

func (d *Driver) seedWalletCards(ctx context.Context, fixture *Fixture, summary *Summary) {
	for _, user := range fixture.Users {
		token := d.token(user)
		if token == "" {
			continue
		}
		for _, card := range user.WalletCards {
			if _, err := d.client.CreateWalletCard(ctx, token, card); err != nil {
				d.fail(summary, err, "wallet_card", card.Label)
				continue
			}
			summary.Created++
		}
	}
}

func (d *Driver) seedMemos(ctx context.Context, fixture *Fixture, summary *Summary) {
	for _, user := range fixture.Users {
		token := d.token(user)
		if token == "" {
			continue
		}
		for _, memo := range user.Memos {
			id, err := d.client.CreateMemo(ctx, token, memo)
			if err != nil {
				d.fail(summary, err, "memo", memo.Title)
				continue
			}
			summary.Created++
			d.remember(user, memo.Key, id)
		}
	}
}

func (d *Driver) seedFiles(ctx context.Context, fixture *Fixture, summary *Summary) {
	for _, user := range fixture.Users {
		token := d.token(user)
		if token == "" {
			continue
		}
		for _, folder := range user.FileFolders {
			id, err := d.client.CreateFolder(ctx, token, folder.Name)
			if err != nil {
				d.fail(summary, err, "folder", folder.Name)
				continue
			}
			summary.Created++
			d.remember(user, folder.Key, id)
		}
		for _, file := range user.Files {
			var folderID *uint
			if file.FolderKey != "" {
				id, ok := d.lookup(user, file.FolderKey)
				if !ok {
					d.skip(summary, "file", file.Name, "folder was not created")
					continue
				}
				folderID = &id
			}
			id, err := d.client.CreateFile(ctx, token, file, folderID)
			if err != nil {
				d.fail(summary, err, "file", file.Name)
				continue
			}
			summary.Created++
			d.remember(user, file.Key, id)
		}
	}
}

func (d *Driver) seedPhotos(ctx context.Context, fixture *Fixture, summary *Summary) {
	for _, user := range fixture.Users {
		token := d.token(user)
		if token == "" {
			continue
		}
		for _, album := range user.Albums {
			id, err := d.client.CreateAlbum(ctx, token, album)
			if err != nil {
				d.fail(summary, err, "album", album.Name)
				continue
			}
			summary.Created++
			d.remember(user, album.Key, id)
		}
		for _, photo := range user.Photos {
			var albumID *uint
			if photo.AlbumKey != "" {
				id, ok := d.lookup(user, photo.AlbumKey)
				if !ok {
					d.skip(summary, "photo", photo.Caption, "album was not created")
					continue
				}
				albumID = &id
			}
			id, err := d.client.CreatePhoto(ctx, token, photo, albumID)
			if err != nil {
				d.fail(summary, err, "photo", photo.Caption)
				continue
			}
			summary.Created++
			d.remember(user, photo.Key, id)
		}
	}
}

func (d *Driver) seedResumes(ctx context.Context, fixture *Fixture, summary *Summary) {
	for _, user := range fixture.Users {
		token := d.token(user)
		if token == "" {
			continue
		}
		for _, resume := range user.Resumes {
			id, err := d.client.CreateResume(ctx, token, resume)
			if err != nil {
				d.fail(summary, err, "resume", resume.Title)
				continue
			}
			summary.Created++
			d.remember(user, resume.Key, id)
		}
	}
}

// seedShares runs last: every item a share can point at has already
// been attempted, so an unresolved key means the item failed earlier.
func (d *Driver) seedShares(ctx context.Context, fixture *Fixture, summary *Summary) {
	for _, user := range fixture.Users {
		token := d.token(user)
		if token == "" {
			continue
		}
		for _, share := range user.Shares {
			itemID, ok := d.lookup(user, share.ItemKey)
			if !ok {
				d.skip(summary, "share", share.ItemKey, "item was not created")
				continue
			}
			if _, err := d.client.CreateShareLink(ctx, token, itemID, share); err != nil {
				d.fail(summary, err, "share", share.ItemKey)
				continue
			}
			summary.Created++
		}
	}
}
