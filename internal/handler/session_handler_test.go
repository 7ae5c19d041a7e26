package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/folioshelf/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSessionEngine(api *API) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("folioshelf_test", cookie.NewStore([]byte("test-secret"))))
	r.Use(IdentityFromSession())
	r.POST("/login", api.Login)
	r.POST("/logout", api.Logout)
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"identity": currentIdentity(c)})
	})
	return r
}

func TestLoginStoresIdentityInSession(t *testing.T) {
	api, _, cleanup := setupTestDB(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, api.DB().Create(&db.User{UID: "U1", Username: "editor", Password: string(hashed)}).Error)

	r := newSessionEngine(api)

	body, _ := json.Marshal(map[string]string{"username": "editor", "password": "s3cret"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"identity":"U1"}`, w.Body.String())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	api, _, cleanup := setupTestDB(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, api.DB().Create(&db.User{UID: "U1", Username: "editor", Password: string(hashed)}).Error)

	body, _ := json.Marshal(map[string]string{"username": "editor", "password": "nope"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newSessionEngine(api).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestAnonymousIdentityIsEmpty(t *testing.T) {
	api, _, cleanup := setupTestDB(t)
	defer cleanup()

	w := httptest.NewRecorder()
	newSessionEngine(api).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.JSONEq(t, `{"identity":""}`, w.Body.String())
}
