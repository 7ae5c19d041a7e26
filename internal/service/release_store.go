package service

import (
	"context"
	"errors"
	"time"

	"github.com/folioshelf/internal/db"
	"gorm.io/gorm"
)

// PrintAssets references the two print-ready documents of a physical edition.
type PrintAssets struct {
	CoverID string
	FileID  string
}

// ReleaseWithPrintAssets pairs a release with its print edition. Print is nil
// unless both the print cover and the print file are attached.
type ReleaseWithPrintAssets struct {
	db.Release
	Print *PrintAssets
}

// PublishFields are the values written by the publish transition.
// A nil ReleaseNotes leaves the stored notes untouched.
type PublishFields struct {
	Status       db.ReleaseStatus
	ReleaseName  string
	ReleaseNotes *string
	PublishedAt  time.Time
}

// ReleaseStore persists releases.
type ReleaseStore interface {
	FindByID(ctx context.Context, id string) (*db.Release, error)
	FindByIDWithPrintAssets(ctx context.Context, id string) (*ReleaseWithPrintAssets, error)
	// CompareAndSetPublished applies fields only if the stored status still
	// equals expected; otherwise it returns ErrAlreadyPublished.
	CompareAndSetPublished(ctx context.Context, id string, expected db.ReleaseStatus, fields PublishFields) (*db.Release, error)
}

// StoreBookStore reads parent books.
type StoreBookStore interface {
	FindByID(ctx context.Context, id string) (*db.StoreBook, error)
}

// GormReleaseStore is the gorm-backed ReleaseStore.
type GormReleaseStore struct {
	db *gorm.DB
}

// NewGormReleaseStore creates a GormReleaseStore.
func NewGormReleaseStore(gdb *gorm.DB) *GormReleaseStore {
	return &GormReleaseStore{db: gdb}
}

// FindByID fetches a release by id.
func (s *GormReleaseStore) FindByID(ctx context.Context, id string) (*db.Release, error) {
	var release db.Release
	if err := s.db.WithContext(ctx).First(&release, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReleaseNotFound
		}
		return nil, err
	}
	return &release, nil
}

// FindByIDWithPrintAssets fetches a release and resolves its print edition.
func (s *GormReleaseStore) FindByIDWithPrintAssets(ctx context.Context, id string) (*ReleaseWithPrintAssets, error) {
	release, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ReleaseWithPrintAssets{Release: *release, Print: printAssetsOf(release)}, nil
}

// CompareAndSetPublished 在单条条件 UPDATE 中完成状态检查与写入，避免并发发布。
func (s *GormReleaseStore) CompareAndSetPublished(ctx context.Context, id string, expected db.ReleaseStatus, fields PublishFields) (*db.Release, error) {
	var updated db.Release
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&db.Release{}).Where("id = ?", id)
		if expected == db.ReleaseStatusUnpublished {
			query = query.Where("(status = ? OR status = '' OR status IS NULL)", expected)
		} else {
			query = query.Where("status = ?", expected)
		}

		updates := map[string]interface{}{
			"status":       fields.Status,
			"release_name": fields.ReleaseName,
			"published_at": fields.PublishedAt,
		}
		if fields.ReleaseNotes != nil {
			updates["release_notes"] = *fields.ReleaseNotes
		}

		result := query.Updates(updates)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&db.Release{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrReleaseNotFound
			}
			return ErrAlreadyPublished
		}

		return tx.First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// GormStoreBookStore is the gorm-backed StoreBookStore.
type GormStoreBookStore struct {
	db *gorm.DB
}

// NewGormStoreBookStore creates a GormStoreBookStore.
func NewGormStoreBookStore(gdb *gorm.DB) *GormStoreBookStore {
	return &GormStoreBookStore{db: gdb}
}

// FindByID fetches a store book by id.
func (s *GormStoreBookStore) FindByID(ctx context.Context, id string) (*db.StoreBook, error) {
	var book db.StoreBook
	if err := s.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

func printAssetsOf(release *db.Release) *PrintAssets {
	cover := derefTrim(release.PrintCoverID)
	file := derefTrim(release.PrintFileID)
	if cover == "" || file == "" {
		return nil
	}
	return &PrintAssets{CoverID: cover, FileID: file}
}
