package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// pdfcpu 默认会在用户目录写入配置文件
	api.DisableConfigDir()
}

// ErrDocumentTooLarge is returned when a download exceeds the configured limit.
var ErrDocumentTooLarge = errors.New("document exceeds size limit")

// httpDoer 便于在测试中替换 HTTP 客户端。
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// statusError carries a non-2xx download response.
type statusError struct {
	StatusCode int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// PDFOptions configures a PDFInspector.
type PDFOptions struct {
	RetryAttempts int
	RetryWait     time.Duration
	MaxBytes      int64
	HTTPClient    httpDoer
	Logger        *log.Logger
}

// PDFInspector downloads a PDF and reads every page's MediaBox via pdfcpu.
type PDFInspector struct {
	http     httpDoer
	retrier  retry.Retry[[]byte]
	maxBytes int64
	logger   *log.Logger
}

// NewPDFInspector creates a PDFInspector. Downloads are retried on network
// errors and 5xx/429 responses; parsing errors are never retried.
func NewPDFInspector(opts PDFOptions) *PDFInspector {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	wait := opts.RetryWait
	if wait <= 0 {
		wait = 500 * time.Millisecond
	}

	inspector := &PDFInspector{
		http:     client,
		maxBytes: opts.MaxBytes,
		logger:   logger,
	}
	if opts.RetryAttempts > 1 {
		inspector.retrier = retry.New[[]byte](retry.Config{
			MaxAttempts:   opts.RetryAttempts,
			InitialDelay:  wait,
			MaxDelay:      10 * wait,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    2.0,
			Jitter:        true,
			IsRetryable:   isRetryableDownload,
		})
	}
	return inspector
}

// Open implements Inspector.
func (i *PDFInspector) Open(ctx context.Context, url string) (Document, error) {
	data, err := i.download(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParsePDF(data)
}

// ParsePDF reads the page sizes of an in-memory PDF.
func ParsePDF(data []byte) (Pages, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	dims, err := api.PageDims(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("read pdf pages: %w", err)
	}

	pages := make(Pages, len(dims))
	for idx, dim := range dims {
		pages[idx] = PageSize{Width: dim.Width, Height: dim.Height}
	}
	return pages, nil
}

func (i *PDFInspector) download(ctx context.Context, url string) ([]byte, error) {
	fetch := func(ctx context.Context) ([]byte, error) {
		return i.fetchOnce(ctx, url)
	}
	if i.retrier == nil {
		return fetch(ctx)
	}
	return i.retrier.Do(ctx, fetch)
}

func (i *PDFInspector) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := i.http.Do(req)
	if err != nil {
		i.logger.Warn("document download failed", "err", err)
		return nil, fmt.Errorf("download document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		i.logger.Warn("document download rejected", "status", resp.StatusCode)
		return nil, fmt.Errorf("download document: %w", &statusError{StatusCode: resp.StatusCode})
	}

	reader := io.Reader(resp.Body)
	if i.maxBytes > 0 {
		reader = io.LimitReader(resp.Body, i.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if i.maxBytes > 0 && int64(len(data)) > i.maxBytes {
		return nil, ErrDocumentTooLarge
	}
	return data, nil
}

func isRetryableDownload(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrDocumentTooLarge) {
		return false
	}

	var status *statusError
	if errors.As(err, &status) {
		return status.StatusCode == http.StatusTooManyRequests || status.StatusCode >= 500
	}
	return true
}
