package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/folioshelf/internal/db"
	"github.com/folioshelf/internal/document"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublishContext(t *testing.T, releaseID, identity string, payload any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/releases/"+releaseID+"/publish", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: releaseID}}
	c.Set(identityContextKey, identity)
	return c, w
}

func TestPublishReleaseSuccess(t *testing.T) {
	api, _, cleanup := setupTestDB(t)
	defer cleanup()

	release := seedRelease(t, api, db.StoreBookStatusPublished, nil)
	c, w := newPublishContext(t, release.ID, "U1", map[string]any{
		"releaseName":  "First Edition",
		"releaseNotes": "**Now** available",
	})

	api.PublishRelease(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Release struct {
			Status           string  `json:"status"`
			ReleaseName      string  `json:"releaseName"`
			PublishedAt      *string `json:"publishedAt"`
			ReleaseNotesHTML string  `json:"releaseNotesHtml"`
		} `json:"release"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "published", resp.Release.Status)
	assert.Equal(t, "First Edition", resp.Release.ReleaseName)
	assert.NotNil(t, resp.Release.PublishedAt)
	assert.Contains(t, resp.Release.ReleaseNotesHTML, "<strong>Now</strong>")
}

func TestPublishReleaseErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		identity   string
		bookStatus string
		published  bool
		missing    bool
		want       int
	}{
		{name: "anonymous", identity: "", bookStatus: db.StoreBookStatusPublished, want: http.StatusUnauthorized},
		{name: "not owner", identity: "U2", bookStatus: db.StoreBookStatusPublished, want: http.StatusForbidden},
		{name: "unknown release", identity: "U1", bookStatus: db.StoreBookStatusPublished, missing: true, want: http.StatusNotFound},
		{name: "already published", identity: "U1", bookStatus: db.StoreBookStatusPublished, published: true, want: http.StatusConflict},
		{name: "book in review", identity: "U1", bookStatus: db.StoreBookStatusInReview, want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _, cleanup := setupTestDB(t)
			defer cleanup()

			release := seedRelease(t, api, tt.bookStatus, func(r *db.Release) {
				if tt.published {
					r.Status = db.ReleaseStatusPublished
				}
			})
			id := release.ID
			if tt.missing {
				id = "00000000-0000-0000-0000-000000000000"
			}

			c, w := newPublishContext(t, id, tt.identity, map[string]any{"releaseName": "First Edition"})
			api.PublishRelease(c)

			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestPublishReleaseReportsEveryValidationFailure(t *testing.T) {
	api, inspector, cleanup := setupTestDB(t)
	defer cleanup()

	cover, file := "cover-1", "file-1"
	release := seedRelease(t, api, db.StoreBookStatusPublished, func(r *db.Release) {
		r.PrintCoverID = &cover
		r.PrintFileID = &file
	})
	inspector.pages = document.Pages{{Width: 432, Height: 648}, {Width: 432, Height: 648}, {Width: 432, Height: 648}}

	c, w := newPublishContext(t, release.ID, "U1", map[string]any{"releaseName": strings.Repeat("x", 120)})
	api.PublishRelease(c)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Failures []struct {
			Stage   string `json:"stage"`
			Message string `json:"message"`
		} `json:"failures"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	stages := make([]string, 0, len(resp.Failures))
	for _, failure := range resp.Failures {
		stages = append(stages, failure.Stage)
	}
	assert.Contains(t, stages, "release_name")
	assert.Contains(t, stages, "interior_page_count")
	assert.Contains(t, stages, "cover_page_size")

	var stored db.Release
	require.NoError(t, api.DB().First(&stored, "id = ?", release.ID).Error)
	assert.Equal(t, db.ReleaseStatusUnpublished, stored.Status)
}

func TestPublishReleaseRejectsMalformedBody(t *testing.T) {
	api, _, cleanup := setupTestDB(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/api/releases/x/publish", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: "x"}}

	api.PublishRelease(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestGetReleaseRendersSanitizedNotes(t *testing.T) {
	api, _, cleanup := setupTestDB(t)
	defer cleanup()

	release := seedRelease(t, api, db.StoreBookStatusPublished, func(r *db.Release) {
		r.ReleaseNotes = "# Changes\n<script>alert(1)</script>"
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/releases/"+release.ID, nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: release.ID}}

	api.GetRelease(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Changes</h1>")
	assert.NotContains(t, w.Body.String(), "<script>")
}

func TestGetReleaseNotFound(t *testing.T) {
	api, _, cleanup := setupTestDB(t)
	defer cleanup()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/releases/missing", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "missing"}}

	api.GetRelease(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
