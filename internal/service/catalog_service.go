package service

import (
	"context"
	"errors"
	"strings"

	"github.com/folioshelf/internal/db"
	"gorm.io/gorm"
)

// CatalogService serves the read-only publisher/author/book listings.
type CatalogService struct {
	db *gorm.DB
}

// StoreBookFilter narrows ListStoreBooks.
type StoreBookFilter struct {
	Status     string
	CategoryID string
	Search     string
}

// NewCatalogService creates a CatalogService instance.
func NewCatalogService(gdb *gorm.DB) *CatalogService {
	return &CatalogService{db: gdb}
}

// ListPublishers returns publishers ordered by name.
func (s *CatalogService) ListPublishers(ctx context.Context, params ListParams) (*PageResult[db.Publisher], error) {
	return paginate[db.Publisher](s.db.WithContext(ctx).Model(&db.Publisher{}), params, "name asc, id asc")
}

// GetPublisher fetches a publisher by id.
func (s *CatalogService) GetPublisher(ctx context.Context, id string) (*db.Publisher, error) {
	var publisher db.Publisher
	if err := s.db.WithContext(ctx).First(&publisher, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublisherNotFound
		}
		return nil, err
	}
	return &publisher, nil
}

// ListPublisherBooks returns the books of one publisher.
func (s *CatalogService) ListPublisherBooks(ctx context.Context, publisherID string, params ListParams) (*PageResult[db.StoreBook], error) {
	if _, err := s.GetPublisher(ctx, publisherID); err != nil {
		return nil, err
	}
	query := s.db.WithContext(ctx).Model(&db.StoreBook{}).Where("publisher_id = ?", publisherID)
	return paginate[db.StoreBook](query, params, "created_at desc, id asc")
}

// ListAuthors returns authors ordered by name.
func (s *CatalogService) ListAuthors(ctx context.Context, params ListParams) (*PageResult[db.Author], error) {
	return paginate[db.Author](s.db.WithContext(ctx).Model(&db.Author{}), params, "name asc, id asc")
}

// GetAuthor fetches an author by id.
func (s *CatalogService) GetAuthor(ctx context.Context, id string) (*db.Author, error) {
	var author db.Author
	if err := s.db.WithContext(ctx).First(&author, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	return &author, nil
}

// ListAuthorBooks returns the books written by one author.
func (s *CatalogService) ListAuthorBooks(ctx context.Context, authorID string, params ListParams) (*PageResult[db.StoreBook], error) {
	if _, err := s.GetAuthor(ctx, authorID); err != nil {
		return nil, err
	}
	query := s.db.WithContext(ctx).Model(&db.StoreBook{}).Where("author_id = ?", authorID)
	return paginate[db.StoreBook](query, params, "created_at desc, id asc")
}

// ListCategories returns every category ordered by name.
func (s *CatalogService) ListCategories(ctx context.Context, params ListParams) (*PageResult[db.Category], error) {
	return paginate[db.Category](s.db.WithContext(ctx).Model(&db.Category{}), params, "name asc")
}

// ListStoreBooks provides paginated books matching the filter.
func (s *CatalogService) ListStoreBooks(ctx context.Context, filter StoreBookFilter, params ListParams) (*PageResult[db.StoreBook], error) {
	query := s.db.WithContext(ctx).Model(&db.StoreBook{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := strings.TrimSpace(filter.CategoryID); category != "" {
		query = query.Where("category_id = ?", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR subtitle LIKE ?", like, like)
	}
	return paginate[db.StoreBook](query, params, "created_at desc, id asc")
}

// GetStoreBook fetches a store book by id.
func (s *CatalogService) GetStoreBook(ctx context.Context, id string) (*db.StoreBook, error) {
	return NewGormStoreBookStore(s.db).FindByID(ctx, id)
}

// ListBookReleases returns a book's releases, newest publication first.
func (s *CatalogService) ListBookReleases(ctx context.Context, bookID string, params ListParams) (*PageResult[db.Release], error) {
	if _, err := s.GetStoreBook(ctx, bookID); err != nil {
		return nil, err
	}
	query := s.db.WithContext(ctx).Model(&db.Release{}).Where("store_book_id = ?", bookID)
	return paginate[db.Release](query, params, "published_at desc, created_at desc")
}
