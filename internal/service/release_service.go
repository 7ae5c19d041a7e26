package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/folioshelf/internal/db"
)

// ReleaseServiceConfig wires the collaborators of ReleaseService.
type ReleaseServiceConfig struct {
	Releases          ReleaseStore
	Books             StoreBookStore
	Gate              *AuthorizationGate
	Pipeline          *ValidationPipeline
	InspectionTimeout time.Duration
	Logger            *log.Logger
	Now               func() time.Time
}

// ReleaseService owns the release publication workflow.
type ReleaseService struct {
	releases ReleaseStore
	books    StoreBookStore
	gate     *AuthorizationGate
	pipeline *ValidationPipeline
	timeout  time.Duration
	logger   *log.Logger
	now      func() time.Time
}

// NewReleaseService creates a ReleaseService instance.
func NewReleaseService(cfg ReleaseServiceConfig) *ReleaseService {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &ReleaseService{
		releases: cfg.Releases,
		books:    cfg.Books,
		gate:     cfg.Gate,
		pipeline: cfg.Pipeline,
		timeout:  cfg.InspectionTimeout,
		logger:   logger,
		now:      now,
	}
}

// Get fetches a release by id.
func (s *ReleaseService) Get(ctx context.Context, id string) (*db.Release, error) {
	return s.releases.FindByID(ctx, strings.TrimSpace(id))
}

// Publish 校验并发布一个版本。
// 顺序：加载版本 → 权限 → 是否已发布 → 父级图书状态 → 内容校验 → 条件写入。
// 前五步不产生任何写入；校验失败会一次性返回全部问题。
func (s *ReleaseService) Publish(ctx context.Context, identity, releaseID, releaseName string, releaseNotes *string) (*db.Release, error) {
	logger := s.logger.With("release", releaseID, "identity", identity)

	release, err := s.releases.FindByIDWithPrintAssets(ctx, strings.TrimSpace(releaseID))
	if err != nil {
		return nil, s.reject(logger, err)
	}

	if err := s.gate.CanPublish(identity, &release.Release); err != nil {
		return nil, s.reject(logger, err)
	}

	next, err := nextReleaseStatus(release.CurrentStatus())
	if err != nil {
		return nil, s.reject(logger, err)
	}

	book, err := s.books.FindByID(ctx, release.StoreBookID)
	if err != nil {
		return nil, s.reject(logger, err)
	}
	if !book.AllowsReleasePublication() {
		return nil, s.reject(logger, fmt.Errorf("%w: book %s is %s", ErrParentNotPublished, book.ID, book.Status))
	}

	failures, err := s.validate(ctx, PublicationInput{
		ReleaseName:  releaseName,
		ReleaseNotes: releaseNotes,
		Print:        release.Print,
	})
	if err != nil {
		logger.Error("release validation could not complete", "err", err)
		return nil, err
	}
	if len(failures) > 0 {
		return nil, s.reject(logger, &ValidationError{Failures: failures})
	}

	fields := PublishFields{
		Status:      next,
		ReleaseName: strings.TrimSpace(releaseName),
		PublishedAt: s.now().UTC(),
	}
	if releaseNotes != nil {
		notes := strings.TrimSpace(*releaseNotes)
		fields.ReleaseNotes = &notes
	}

	published, err := s.releases.CompareAndSetPublished(ctx, release.ID, db.ReleaseStatusUnpublished, fields)
	if err != nil {
		if errors.Is(err, ErrAlreadyPublished) || errors.Is(err, ErrReleaseNotFound) {
			return nil, s.reject(logger, err)
		}
		logger.Error("release publish write failed", "err", err)
		return nil, err
	}

	logger.Info("release published", "book", release.StoreBookID, "print", release.Print != nil)
	return published, nil
}

func (s *ReleaseService) validate(ctx context.Context, input PublicationInput) ([]ValidationFailure, error) {
	if s.timeout > 0 && input.Print != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	failures, err := s.pipeline.Validate(ctx, input)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("document inspection timed out: %w", err)
		}
		return nil, err
	}
	return failures, nil
}

func (s *ReleaseService) reject(logger *log.Logger, err error) error {
	var validation *ValidationError
	if errors.As(err, &validation) {
		logger.Warn("publish rejected", "reason", ErrValidationFailed, "failures", len(validation.Failures))
		return err
	}
	logger.Warn("publish rejected", "reason", err)
	return err
}
