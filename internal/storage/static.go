package storage

import (
	"context"
	"net/url"
	"strings"
)

// StaticStore serves assets from a fixed public base URL, e.g. a CDN or a
// local file server during development.
type StaticStore struct {
	baseURL string
	prefix  string
}

// NewStaticStore creates a StaticStore rooted at baseURL.
func NewStaticStore(baseURL, prefix string) *StaticStore {
	return &StaticStore{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		prefix:  prefix,
	}
}

// ResolveRetrievalURL joins the base URL and the object key.
func (s *StaticStore) ResolveRetrievalURL(_ context.Context, assetID string) (string, error) {
	key, err := objectKey(s.prefix, assetID)
	if err != nil {
		return "", err
	}

	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return s.baseURL + "/" + strings.Join(segments, "/"), nil
}
