package handler

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/folioshelf/internal/config"
	"github.com/folioshelf/internal/db"
	"github.com/folioshelf/internal/document"
	"github.com/folioshelf/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAssets struct{}

func (stubAssets) ResolveRetrievalURL(_ context.Context, assetID string) (string, error) {
	return "mem://" + assetID, nil
}

// stubInspector returns the same document for every URL.
type stubInspector struct {
	pages document.Pages
	opens int
}

func (s *stubInspector) Open(_ context.Context, _ string) (document.Document, error) {
	s.opens++
	return s.pages, nil
}

func setupTestDB(t *testing.T) (*API, *stubInspector, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	inspector := &stubInspector{}
	releases := service.NewReleaseService(service.ReleaseServiceConfig{
		Releases: service.NewGormReleaseStore(gdb),
		Books:    service.NewGormStoreBookStore(gdb),
		Gate:     service.NewAuthorizationGate([]string{"ops-1"}),
		Pipeline: service.NewValidationPipeline(config.DefaultPolicy(), stubAssets{}, inspector),
		Logger:   log.New(io.Discard),
	})

	return NewAPI(gdb, releases), inspector, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func seedRelease(t *testing.T, api *API, bookStatus string, mutate func(*db.Release)) db.Release {
	t.Helper()

	book := db.StoreBook{Title: "The Long Harbor", AuthorID: "author-1", Status: bookStatus}
	if err := api.DB().Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}

	release := db.Release{
		StoreBookID: book.ID,
		Status:      db.ReleaseStatusUnpublished,
		ReleaseName: "Draft",
		OwnerID:     "U1",
	}
	if mutate != nil {
		mutate(&release)
	}
	if err := api.DB().Create(&release).Error; err != nil {
		t.Fatalf("failed to seed release: %v", err)
	}
	return release
}
