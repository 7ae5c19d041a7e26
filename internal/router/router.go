package router

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/folioshelf/internal/handler"
	"github.com/folioshelf/internal/logging"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionName     = "folioshelf_session"
	requestIDHeader = "X-Request-ID"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, logger *log.Logger, sessionSecret string) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(logging.RequestLogger(logger))
	r.Use(gin.Recovery())

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(handler.IdentityFromSession())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/login", api.Login)
		apiGroup.POST("/logout", api.Logout)

		apiGroup.GET("/publishers", api.ListPublishers)
		apiGroup.GET("/publishers/:id", api.GetPublisher)
		apiGroup.GET("/publishers/:id/books", api.ListPublisherBooks)

		apiGroup.GET("/authors", api.ListAuthors)
		apiGroup.GET("/authors/:id", api.GetAuthor)
		apiGroup.GET("/authors/:id/books", api.ListAuthorBooks)

		apiGroup.GET("/categories", api.ListCategories)

		apiGroup.GET("/books", api.ListBooks)
		apiGroup.GET("/books/:id", api.GetBook)
		apiGroup.GET("/books/:id/releases", api.ListBookReleases)

		apiGroup.GET("/releases/:id", api.GetRelease)
		apiGroup.POST("/releases/:id/publish", api.PublishRelease)
	}

	return r
}

// RequestID 为每个请求分配 ID，已有的 X-Request-ID 原样沿用。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(logging.RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
