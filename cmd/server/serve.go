package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/folioshelf/internal/config"
	"github.com/folioshelf/internal/db"
	"github.com/folioshelf/internal/document"
	"github.com/folioshelf/internal/handler"
	"github.com/folioshelf/internal/router"
	"github.com/folioshelf/internal/service"
	"github.com/folioshelf/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	if mode := strings.TrimSpace(cfg.GinMode); mode != "" {
		gin.SetMode(mode)
	}

	ctx := cmd.Context()
	releases, err := newReleaseService(ctx, cfg, db.DB, logger)
	if err != nil {
		return err
	}

	r := router.SetupRouter(handler.NewAPI(db.DB, releases), logger, cfg.SessionSecret)
	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newReleaseService(ctx context.Context, cfg config.AppConfig, gdb *gorm.DB, logger *log.Logger) (*service.ReleaseService, error) {
	assets, err := newAssetStore(ctx, cfg.Assets)
	if err != nil {
		return nil, err
	}

	inspector := document.NewPDFInspector(document.PDFOptions{
		RetryAttempts: cfg.Inspection.RetryAttempts,
		MaxBytes:      cfg.Inspection.MaxDocumentBytes,
		Logger:        logger.WithPrefix("inspector"),
	})

	return service.NewReleaseService(service.ReleaseServiceConfig{
		Releases:          service.NewGormReleaseStore(gdb),
		Books:             service.NewGormStoreBookStore(gdb),
		Gate:              service.NewAuthorizationGate(cfg.Auth.PrivilegedIdentities),
		Pipeline:          service.NewValidationPipeline(cfg.Policy, assets, inspector),
		InspectionTimeout: cfg.Inspection.Timeout,
		Logger:            logger.WithPrefix("release"),
	}), nil
}

func newAssetStore(ctx context.Context, cfg config.AssetsConfig) (storage.AssetStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "s3":
		return storage.NewS3Store(ctx, storage.S3Options{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			Prefix:    cfg.Prefix,
			PathStyle: cfg.PathStyle,
			URLTTL:    cfg.URLTTL,
		})
	case "", "static":
		return storage.NewStaticStore(cfg.BaseURL, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown assets driver %q", cfg.Driver)
	}
}
