package upload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, "https://cdn.example.com/uploads/", 1)

	info, err := s.Save("avatar.png", "image/png", strings.NewReader("pngdata"))
	require.NoError(t, err)

	assert.Equal(t, "avatar.png", info.Name)
	assert.Equal(t, "image/png", info.Type)
	assert.Equal(t, int64(7), info.Size)
	assert.True(t, strings.HasPrefix(info.URL, "https://cdn.example.com/uploads/"))
	assert.True(t, strings.HasSuffix(info.URL, "-avatar.png"))

	stored := strings.TrimPrefix(info.URL, "https://cdn.example.com/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, stored))
	require.NoError(t, err)
	assert.Equal(t, "pngdata", string(data))
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, "/uploads", 1)

	big := strings.Repeat("x", int(s.MaxSize())+1)
	_, err := s.Save("big.bin", "application/octet-stream", strings.NewReader(big))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnconfiguredStore(t *testing.T) {
	s := NewStore("", "/uploads", 10)
	assert.False(t, s.Configured())

	_, err := s.Save("f.txt", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSaveSanitizesName(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, "/uploads", 1)

	info, err := s.Save("../../etc/passwd", "text/plain", strings.NewReader("nope"))
	require.NoError(t, err)
	assert.Equal(t, "passwd", info.Name)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "..")
}

func TestDataURL(t *testing.T) {
	url := DataURL("image/png", []byte{1, 2, 3})
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	url = DataURL("", []byte("x"))
	assert.True(t, strings.HasPrefix(url, "data:application/octet-stream;base64,"))
}
