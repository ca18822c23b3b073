package filestore

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalImageStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalImageStore(dir)
	require.NoError(t, err)

	key, err := s.Save("cat.png", bytes.NewReader([]byte("png-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".png"))

	data, err := ioutil.ReadFile(filepath.Join(dir, key))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	assert.Equal(t, "/media/"+key, s.URL(key))
}

func TestLocalImageStoreUniqueKeys(t *testing.T) {
	s, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	k1, err := s.Save("cat.png", bytes.NewReader([]byte("a")))
	require.NoError(t, err)
	k2, err := s.Save("cat.png", bytes.NewReader([]byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestFakeImageStore(t *testing.T) {
	s := NewFakeImageStore()

	key, err := s.Save("cat.png", bytes.NewReader([]byte("png-bytes")))
	require.NoError(t, err)
	assert.Equal(t, "cat.png", key)
	assert.Equal(t, []byte("png-bytes"), s.Saved["cat.png"])
	assert.Equal(t, key, s.URL(key))
}
