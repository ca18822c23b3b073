package filestore

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalImageStore writes images to a directory on disk, for development runs
// without S3 access. Keys resolve to /media/<key> served by the dev server.
type LocalImageStore struct {
	dir       string
	urlPrefix string
}

func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalImageStore{dir: dir, urlPrefix: "/media/"}, nil
}

func (s *LocalImageStore) Save(fileName string, body io.Reader) (string, error) {
	key := uuid.New().String() + filepath.Ext(fileName)

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", err
	}
	return key, nil
}

func (s *LocalImageStore) URL(key string) string {
	return s.urlPrefix + key
}
