// Package filestore stores post image attachments. Posts keep only the key;
// rendering resolves the key to a URL through the same store.
package filestore

import "io"

// ImageStore persists uploaded image bodies and resolves stored keys back to
// serving URLs.
type ImageStore interface {
	// Save stores the image body and returns the key to keep on the post.
	Save(fileName string, body io.Reader) (key string, err error)
	// URL resolves a stored key to the URL the image is served from.
	URL(key string) string
}
