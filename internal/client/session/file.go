package session

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/effyhq/effy-cli/internal/common"
)

// FileStore persists the token as a single file, the CLI counterpart of the
// browser's origin-scoped local storage. The file is re-read on every
// GetToken so a logout performed by another effy process is observed by this
// one on its next request.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path. The parent
// directory is created lazily on the first SetToken.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultTokenPath resolves the conventional token location under the user
// config dir, e.g. ~/.config/effy/token. Falls back to the current directory
// when the platform reports no config dir.
func DefaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "effy-token"
	}
	return filepath.Join(dir, "effy", "token")
}

// GetToken reads the persisted token. Any read failure, including the file
// not existing, is reported as an absent token.
func (s *FileStore) GetToken() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetToken overwrites the persisted token. The value is written to a
// temporary file and renamed into place, so concurrent readers see either
// the old token or the new one, never a partial write.
func (s *FileStore) SetToken(token string) error {
	if token == "" {
		return common.ErrInvalidToken
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "token-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.path)
}

// ClearToken deletes the persisted token. Clearing when no token exists is
// not an error.
func (s *FileStore) ClearToken() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
