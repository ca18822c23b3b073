package filestore

import (
	"io"
	"io/ioutil"
)

// FakeImageStore keeps image bodies in memory, for tests.
type FakeImageStore struct {
	Saved map[string][]byte
}

func NewFakeImageStore() *FakeImageStore {
	return &FakeImageStore{Saved: map[string][]byte{}}
}

func (s *FakeImageStore) Save(fileName string, body io.Reader) (string, error) {
	data, err := ioutil.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.Saved[fileName] = data
	return fileName, nil
}

func (s *FakeImageStore) URL(key string) string {
	return key
}
