package handler

import (
	"github.com/folioshelf/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	releases *service.ReleaseService
	catalog  *service.CatalogService
	users    *service.UserService
}

// NewAPI constructs a handler set with shared services.
// The release service is built by the caller because it needs the asset
// store, document inspector and validation policy.
func NewAPI(db *gorm.DB, releases *service.ReleaseService) *API {
	return &API{
		db:       db,
		releases: releases,
		catalog:  service.NewCatalogService(db),
		users:    service.NewUserService(db),
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
