// Package storage resolves asset identifiers to URLs the document inspector
// can download from. Binary uploads are handled by the identity/storage
// platform and never pass through this service.
package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrAssetIDRequired is returned for an empty asset identifier.
var ErrAssetIDRequired = errors.New("asset id is required")

// AssetStore 根据资源 ID 返回可下载的链接。
type AssetStore interface {
	ResolveRetrievalURL(ctx context.Context, assetID string) (string, error)
}

func objectKey(prefix, assetID string) (string, error) {
	id := strings.Trim(strings.TrimSpace(assetID), "/")
	if id == "" {
		return "", ErrAssetIDRequired
	}
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return id, nil
	}
	return prefix + "/" + id, nil
}
