// Package assetstore defines the contract for the remote binary store that
// keeps photo content. The store is not transactional with the database; a
// commit failure after a successful upload leaves an orphaned remote asset.
package assetstore

import "context"

// Asset identifies an uploaded object and where clients can fetch it.
type Asset struct {
	URL     string
	AssetID string
}

type Store interface {
	Upload(ctx context.Context, content []byte, contentType string) (*Asset, error)
	Remove(ctx context.Context, assetID string) error
}
