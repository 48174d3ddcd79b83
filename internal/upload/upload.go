// Package upload is the thin file-upload proxy. Files land on local disk
// under a uuid-prefixed name; when no upload directory is configured the
// caller gets ErrNotConfigured and is expected to fall back to embedding the
// file as a data URL.
package upload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"
)

// ErrNotConfigured signals that no storage backend is wired; the HTTP layer
// turns it into a 503 with {"configured": false}.
var (
	ErrNotConfigured = errors.New("upload storage not configured")
	ErrTooLarge      = errors.New("file exceeds the size limit")
)

type FileInfo struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

type Store struct {
	dir     string
	baseURL string
	maxSize int64
}

// NewStore builds a disk-backed store. An empty dir means "not configured".
func NewStore(dir, baseURL string, maxSizeMB int) *Store {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: int64(maxSizeMB) << 20,
	}
}

func (s *Store) Configured() bool { return s.dir != "" }

// MaxSize returns the per-file limit in bytes.
func (s *Store) MaxSize() int64 { return s.maxSize }

// Save writes the file and returns its public descriptor. The stored name is
// uuid-prefixed so uploads never collide.
func (s *Store) Save(name, contentType string, r io.Reader) (FileInfo, error) {
	if !s.Configured() {
		return FileInfo{}, ErrNotConfigured
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return FileInfo{}, fmt.Errorf("create upload dir: %w", err)
	}

	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		base = "file"
	}
	stored := uuid.Must(uuid.NewV4()).String() + "-" + base

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return FileInfo{}, fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return FileInfo{}, fmt.Errorf("write file: %w", err)
	}
	if written > s.maxSize {
		os.Remove(f.Name())
		return FileInfo{}, fmt.Errorf("%w (%d bytes max)", ErrTooLarge, s.maxSize)
	}

	return FileInfo{
		URL:  s.baseURL + "/" + stored,
		Name: base,
		Type: contentType,
		Size: written,
	}, nil
}

// DataURL is the local fallback used when the proxy is not configured: the
// file travels inside the response payload instead of object storage.
func DataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
