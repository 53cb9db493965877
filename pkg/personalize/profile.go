// Package personalize manages per-farmer profile and insight files
package personalize

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
)

// FileProfileStore keeps one free-text profile file per farmer under a
// data directory. Writes replace the whole file.
type FileProfileStore struct {
	dataDir string
	logger  interfaces.Logger
}

// NewFileProfileStore creates a profile store rooted at dataDir
func NewFileProfileStore(dataDir string, logger interfaces.Logger) (*FileProfileStore, error) {
	if dataDir == "" {
		return nil, errors.NewConfigInvalidError("profile data directory is required")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, errors.NewFileErrorWithCause("failed to create profile directory", err)
	}
	return &FileProfileStore{dataDir: dataDir, logger: logger}, nil
}

func (s *FileProfileStore) path(ownerID string) string {
	return filepath.Join(s.dataDir, sanitizeOwnerID(ownerID)+"_profile.txt")
}

// Write fully overwrites the profile text
func (s *FileProfileStore) Write(ownerID, text string) error {
	if strings.TrimSpace(ownerID) == "" {
		return errors.NewMissingFieldError("owner_id")
	}
	if err := os.WriteFile(s.path(ownerID), []byte(text), 0644); err != nil {
		return errors.NewFileErrorWithCause("failed to write profile", err)
	}
	s.logger.Debug("profile written", map[string]interface{}{
		"owner_id": ownerID,
		"bytes":    len(text),
	})
	return nil
}

// Read returns the profile text, or "" when no profile exists
func (s *FileProfileStore) Read(ownerID string) (string, error) {
	if strings.TrimSpace(ownerID) == "" {
		return "", errors.NewMissingFieldError("owner_id")
	}
	data, err := os.ReadFile(s.path(ownerID))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.NewFileErrorWithCause("failed to read profile", err)
	}
	return string(data), nil
}

// Delete removes the stored profile; missing files are not an error
func (s *FileProfileStore) Delete(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return errors.NewMissingFieldError("owner_id")
	}
	if err := os.Remove(s.path(ownerID)); err != nil && !os.IsNotExist(err) {
		return errors.NewFileErrorWithCause("failed to delete profile", err)
	}
	return nil
}

// sanitizeOwnerID keeps file names flat even when an owner id carries
// path separators or other hostile characters.
func sanitizeOwnerID(ownerID string) string {
	var b strings.Builder
	for _, r := range ownerID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

var _ interfaces.ProfileStore = (*FileProfileStore)(nil)
