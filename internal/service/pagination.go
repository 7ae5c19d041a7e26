package service

import "gorm.io/gorm"

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListParams is a limit/offset window.
type ListParams struct {
	Limit  int
	Offset int
}

// PageResult is the `{ total, items }` shape every listing returns.
type PageResult[T any] struct {
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// paginate counts query, then loads one window of it in the given order.
func paginate[T any](query *gorm.DB, params ListParams, order string) (*PageResult[T], error) {
	result := &PageResult[T]{Items: []T{}}
	if err := query.Session(&gorm.Session{}).Count(&result.Total).Error; err != nil {
		return nil, err
	}

	if err := query.Session(&gorm.Session{}).
		Order(order).
		Limit(normalizeLimit(params.Limit)).
		Offset(normalizeOffset(params.Offset)).
		Find(&result.Items).Error; err != nil {
		return nil, err
	}
	return result, nil
}
