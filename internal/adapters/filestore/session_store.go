// Package filestore provides a file-backed implementation of
// ports.SessionStore. It keeps the single session record in one JSON
// file, the device-local equivalent of the platform keychain entry.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	domainauth "github.com/zion-platform/zion-sync/internal/domain/auth"
	"github.com/zion-platform/zion-sync/internal/ports"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// Store persists the session record in a single JSON file.
type Store struct {
	path string
}

// New creates a file-backed session store at path.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("filestore: path is required")
	}
	return &Store{path: path}, nil
}

// Load reads the stored session. Absent or malformed records return
// ports.ErrSessionNotFound; a record that decodes but fails validation
// counts as malformed.
func (s *Store) Load(_ context.Context) (domainauth.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domainauth.Session{}, ports.ErrSessionNotFound
		}
		return domainauth.Session{}, fmt.Errorf("read session file: %w", err)
	}

	var sess domainauth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	if err := sess.Validate(); err != nil {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	return sess, nil
}

// Save atomically replaces the stored session using a temp file and
// rename in the target directory.
func (s *Store) Save(_ context.Context, sess domainauth.Session) error {
	if err := sess.Validate(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeAndClose(tmp, data); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write session file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace session file: %w", err)
	}

	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *Store) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func writeAndClose(f *os.File, data []byte) error {
	if err := f.Chmod(fileMode); err != nil {
		_ = f.Close()
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
