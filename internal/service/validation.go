package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/folioshelf/internal/config"
	"github.com/folioshelf/internal/document"
	"github.com/folioshelf/internal/storage"
	"golang.org/x/sync/errgroup"
)

// Validation stages, reported on every ValidationFailure.
const (
	StageReleaseName       = "release_name"
	StageReleaseNotes      = "release_notes"
	StageInteriorPageCount = "interior_page_count"
	StageInteriorPageSize  = "interior_page_size"
	StageCoverPageCount    = "cover_page_count"
	StageCoverPageSize     = "cover_page_size"
)

// maxListedPages caps how many offending page numbers one message names.
const maxListedPages = 10

// PublicationInput is what the pipeline checks for one publish attempt.
type PublicationInput struct {
	ReleaseName  string
	ReleaseNotes *string
	Print        *PrintAssets
}

// ValidationPipeline runs every publication check and collects the failures.
// No check stops the others.
type ValidationPipeline struct {
	policy    config.PolicyConfig
	assets    storage.AssetStore
	inspector document.Inspector
}

// NewValidationPipeline creates a pipeline for the given policy.
func NewValidationPipeline(policy config.PolicyConfig, assets storage.AssetStore, inspector document.Inspector) *ValidationPipeline {
	return &ValidationPipeline{policy: policy, assets: assets, inspector: inspector}
}

// Validate returns all failures; an error means the checks could not be
// completed (storage, network or parsing) and is never a validation result.
func (p *ValidationPipeline) Validate(ctx context.Context, input PublicationInput) ([]ValidationFailure, error) {
	var failures []ValidationFailure

	if failure, ok := checkLength(StageReleaseName, "release name", input.ReleaseName, p.policy.ReleaseName); !ok {
		failures = append(failures, failure)
	}

	if input.ReleaseNotes != nil {
		if failure, ok := checkLength(StageReleaseNotes, "release notes", *input.ReleaseNotes, p.policy.ReleaseNotes); !ok {
			failures = append(failures, failure)
		}
	}

	if input.Print != nil {
		printFailures, err := p.validatePrint(ctx, *input.Print)
		if err != nil {
			return nil, err
		}
		failures = append(failures, printFailures...)
	}

	return failures, nil
}

func (p *ValidationPipeline) validatePrint(ctx context.Context, assets PrintAssets) ([]ValidationFailure, error) {
	var interior, cover document.Document

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := p.open(gctx, "print file", assets.FileID)
		interior = doc
		return err
	})
	g.Go(func() error {
		doc, err := p.open(gctx, "print cover", assets.CoverID)
		cover = doc
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var failures []ValidationFailure
	interiorPages := interior.PageCount()

	if failure, ok := p.checkInteriorPageCount(interiorPages); !ok {
		failures = append(failures, failure)
	}

	failure, ok, err := p.checkInteriorPageSizes(interior)
	if err != nil {
		return nil, err
	}
	if !ok {
		failures = append(failures, failure)
	}

	if failure, ok := p.checkCoverPageCount(cover.PageCount()); !ok {
		failures = append(failures, failure)
	}

	failure, ok, err = p.checkCoverSize(cover, interiorPages)
	if err != nil {
		return nil, err
	}
	if !ok {
		failures = append(failures, failure)
	}

	return failures, nil
}

func (p *ValidationPipeline) open(ctx context.Context, label, assetID string) (document.Document, error) {
	url, err := p.assets.ResolveRetrievalURL(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("resolve %s %s: %w", label, assetID, err)
	}
	doc, err := p.inspector.Open(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("inspect %s %s: %w", label, assetID, err)
	}
	return doc, nil
}

func (p *ValidationPipeline) checkInteriorPageCount(pages int) (ValidationFailure, bool) {
	rule := p.policy.Print.Interior
	if pages >= rule.MinPages && (rule.MaxPages <= 0 || pages <= rule.MaxPages) {
		return ValidationFailure{}, true
	}
	message := fmt.Sprintf("print file must have at least %d pages, got %d", rule.MinPages, pages)
	if rule.MaxPages > 0 {
		message = fmt.Sprintf("print file must have between %d and %d pages, got %d", rule.MinPages, rule.MaxPages, pages)
	}
	return ValidationFailure{Stage: StageInteriorPageCount, Message: message}, false
}

// checkInteriorPageSizes checks every page, not only the first.
func (p *ValidationPipeline) checkInteriorPageSizes(doc document.Document) (ValidationFailure, bool, error) {
	rule := p.policy.Print.Interior

	var offending []int
	for index := 1; index <= doc.PageCount(); index++ {
		size, err := doc.Page(index)
		if err != nil {
			return ValidationFailure{}, false, fmt.Errorf("read print file page %d: %w", index, err)
		}
		if !withinTolerance(size.Width, rule.Width, rule.Tolerance) || !withinTolerance(size.Height, rule.Height, rule.Tolerance) {
			offending = append(offending, index)
		}
	}
	if len(offending) == 0 {
		return ValidationFailure{}, true, nil
	}

	return ValidationFailure{
		Stage: StageInteriorPageSize,
		Message: fmt.Sprintf("print file pages must be %sx%spt (±%spt); %s",
			points(rule.Width), points(rule.Height), points(rule.Tolerance), describePages(offending)),
	}, false, nil
}

func (p *ValidationPipeline) checkCoverPageCount(pages int) (ValidationFailure, bool) {
	expected := p.policy.Print.Cover.Pages
	if pages == expected {
		return ValidationFailure{}, true
	}
	return ValidationFailure{
		Stage:   StageCoverPageCount,
		Message: fmt.Sprintf("print cover must have exactly %d page, got %d", expected, pages),
	}, false
}

// checkCoverSize compares the first cover page with the size a cover must
// have to wrap an interior of interiorPages pages.
func (p *ValidationPipeline) checkCoverSize(cover document.Document, interiorPages int) (ValidationFailure, bool, error) {
	if cover.PageCount() < 1 {
		return ValidationFailure{}, true, nil
	}
	size, err := cover.Page(1)
	if err != nil {
		return ValidationFailure{}, false, fmt.Errorf("read print cover page 1: %w", err)
	}

	expected := ExpectedCoverSize(p.policy.Print, interiorPages)
	tolerance := p.policy.Print.Cover.Tolerance
	if withinTolerance(size.Width, expected.Width, tolerance) && withinTolerance(size.Height, expected.Height, tolerance) {
		return ValidationFailure{}, true, nil
	}

	return ValidationFailure{
		Stage: StageCoverPageSize,
		Message: fmt.Sprintf("print cover must be %sx%spt (±%spt) for a %d page print file, got %sx%spt",
			points(expected.Width), points(expected.Height), points(tolerance), interiorPages,
			points(size.Width), points(size.Height)),
	}, false, nil
}

// ExpectedCoverSize returns the flat cover size for an interior page count:
// back + spine + front, plus bleed on every edge. Width grows with pages.
func ExpectedCoverSize(rule config.PrintConfig, interiorPages int) document.PageSize {
	if interiorPages < 0 {
		interiorPages = 0
	}
	spine := rule.Cover.SpineBase + rule.Cover.SpinePerPage*float64(interiorPages)
	return document.PageSize{
		Width:  2*rule.Interior.Width + spine + 2*rule.Cover.Bleed,
		Height: rule.Interior.Height + 2*rule.Cover.Bleed,
	}
}

func checkLength(stage, label, value string, bounds config.LengthBounds) (ValidationFailure, bool) {
	length := utf8.RuneCountInString(strings.TrimSpace(value))
	if length >= bounds.Min && (bounds.Max <= 0 || length <= bounds.Max) {
		return ValidationFailure{}, true
	}
	return ValidationFailure{
		Stage:   stage,
		Message: fmt.Sprintf("%s must be between %d and %d characters, got %d", label, bounds.Min, bounds.Max, length),
	}, false
}

func withinTolerance(actual, expected, tolerance float64) bool {
	return math.Abs(actual-expected) <= tolerance
}

func points(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func describePages(pages []int) string {
	listed := pages
	if len(listed) > maxListedPages {
		listed = listed[:maxListedPages]
	}
	parts := make([]string, len(listed))
	for i, page := range listed {
		parts[i] = strconv.Itoa(page)
	}

	noun := "page"
	if len(pages) > 1 {
		noun = "pages"
	}
	out := fmt.Sprintf("%s %s differ", noun, strings.Join(parts, ", "))
	if len(pages) > len(listed) {
		out = fmt.Sprintf("%s %s and %d more differ", noun, strings.Join(parts, ", "), len(pages)-len(listed))
	}
	return out
}
