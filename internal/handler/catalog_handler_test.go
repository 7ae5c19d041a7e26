package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/folioshelf/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPublishersPagination(t *testing.T) {
	api, _, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 3; i++ {
		publisher := db.Publisher{Name: fmt.Sprintf("Press %d", i), Slug: fmt.Sprintf("press-%d", i)}
		if err := api.DB().Create(&publisher).Error; err != nil {
			t.Fatalf("failed to seed publisher: %v", err)
		}
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/publishers?limit=2&offset=-4", nil)

	api.ListPublishers(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int64          `json:"total"`
		Items []db.Publisher `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Press 0", resp.Items[0].Name)
}

func TestListBooksRejectsInvalidLimit(t *testing.T) {
	api, _, cleanup := setupTestDB(t)
	defer cleanup()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/books?limit=abc", nil)

	api.ListBooks(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestListBooksEmptyReturnsItemsArray(t *testing.T) {
	api, _, cleanup := setupTestDB(t)
	defer cleanup()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/books", nil)

	api.ListBooks(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":0,"items":[]}`, w.Body.String())
}

func TestCatalogNotFoundStatuses(t *testing.T) {
	api, _, cleanup := setupTestDB(t)
	defer cleanup()

	handlers := map[string]gin.HandlerFunc{
		"publisher":       api.GetPublisher,
		"publisher books": api.ListPublisherBooks,
		"author":          api.GetAuthor,
		"author books":    api.ListAuthorBooks,
		"book":            api.GetBook,
		"book releases":   api.ListBookReleases,
	}

	for name, handle := range handlers {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/x/missing", nil)
			c.Params = gin.Params{gin.Param{Key: "id", Value: "missing"}}

			handle(c)

			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestListBookReleases(t *testing.T) {
	api, _, cleanup := setupTestDB(t)
	defer cleanup()

	release := seedRelease(t, api, db.StoreBookStatusPublished, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/books/"+release.StoreBookID+"/releases", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: release.StoreBookID}}

	api.ListBookReleases(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int64        `json:"total"`
		Items []db.Release `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, release.ID, resp.Items[0].ID)
}
