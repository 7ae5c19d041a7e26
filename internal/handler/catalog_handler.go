package handler

import (
	"errors"
	"net/http"

	"github.com/folioshelf/internal/service"
	"github.com/gin-gonic/gin"
)

func respondCatalogError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPublisherNotFound):
		respondError(c, http.StatusNotFound, "出版社不存在")
	case errors.Is(err, service.ErrAuthorNotFound):
		respondError(c, http.StatusNotFound, "作者不存在")
	case errors.Is(err, service.ErrStoreBookNotFound):
		respondError(c, http.StatusNotFound, "图书不存在")
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

// ListPublishers 获取出版社列表
func (a *API) ListPublishers(c *gin.Context) {
	params, ok := parseListParams(c)
	if !ok {
		return
	}
	page, err := a.catalog.ListPublishers(c.Request.Context(), params)
	if err != nil {
		respondCatalogError(c, err, "获取出版社列表失败")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPublisher 获取出版社详情
func (a *API) GetPublisher(c *gin.Context) {
	publisher, err := a.catalog.GetPublisher(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogError(c, err, "获取出版社失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"publisher": publisher})
}

// ListPublisherBooks 获取出版社的图书
func (a *API) ListPublisherBooks(c *gin.Context) {
	params, ok := parseListParams(c)
	if !ok {
		return
	}
	page, err := a.catalog.ListPublisherBooks(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondCatalogError(c, err, "获取图书列表失败")
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListAuthors 获取作者列表
func (a *API) ListAuthors(c *gin.Context) {
	params, ok := parseListParams(c)
	if !ok {
		return
	}
	page, err := a.catalog.ListAuthors(c.Request.Context(), params)
	if err != nil {
		respondCatalogError(c, err, "获取作者列表失败")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetAuthor 获取作者详情
func (a *API) GetAuthor(c *gin.Context) {
	author, err := a.catalog.GetAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogError(c, err, "获取作者失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"author": author})
}

// ListAuthorBooks 获取作者的图书
func (a *API) ListAuthorBooks(c *gin.Context) {
	params, ok := parseListParams(c)
	if !ok {
		return
	}
	page, err := a.catalog.ListAuthorBooks(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondCatalogError(c, err, "获取图书列表失败")
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListCategories 获取分类列表
func (a *API) ListCategories(c *gin.Context) {
	params, ok := parseListParams(c)
	if !ok {
		return
	}
	page, err := a.catalog.ListCategories(c.Request.Context(), params)
	if err != nil {
		respondCatalogError(c, err, "获取分类列表失败")
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListBooks 获取图书列表，支持 status、categoryId、q 过滤
func (a *API) ListBooks(c *gin.Context) {
	params, ok := parseListParams(c)
	if !ok {
		return
	}
	filter := service.StoreBookFilter{
		Status:     c.Query("status"),
		CategoryID: c.Query("categoryId"),
		Search:     c.Query("q"),
	}
	page, err := a.catalog.ListStoreBooks(c.Request.Context(), filter, params)
	if err != nil {
		respondCatalogError(c, err, "获取图书列表失败")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetBook 获取图书详情
func (a *API) GetBook(c *gin.Context) {
	book, err := a.catalog.GetStoreBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogError(c, err, "获取图书失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": book})
}

// ListBookReleases 获取图书的版本列表
func (a *API) ListBookReleases(c *gin.Context) {
	params, ok := parseListParams(c)
	if !ok {
		return
	}
	page, err := a.catalog.ListBookReleases(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondCatalogError(c, err, "获取版本列表失败")
		return
	}
	c.JSON(http.StatusOK, page)
}
