package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
)

// Versioned document keys. Bumping a version leaves old documents behind to
// be migrated on read.
const (
	KeyCart    = "cart:v1"
	KeyOrders  = "orders:v1"
	KeyConsent = "consent:v1"
	KeyTheme   = "theme:v1"
)

// ErrNotFound reports an absent document. Callers treat absence as
// empty/default, never fatal.
var ErrNotFound = errors.New("localstore: document not found")

// Store is a file-backed JSON document store keyed by (namespace, key). It
// stands in for the per-browser storage of the original storefront: each
// client token gets its own namespace, every document lives under a
// versioned key, and a corrupt document reads as absent.
type Store struct {
	dir string
}

// New creates the backing directory if needed.
func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("localstore: dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create localstore dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Get unmarshals the document at (namespace, key) into dest. Absence and
// parse failure both surface as ErrNotFound.
func (s *Store) Get(namespace, key string, dest any) error {
	raw, err := os.ReadFile(s.path(namespace, key))
	if err != nil {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return ErrNotFound
	}
	return nil
}

// Put writes the document atomically (write-to-temp then rename).
func (s *Store) Put(namespace, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", key, err)
	}

	path := s.path(namespace, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create namespace dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".doc-*")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}

	_, writeErr := tmp.Write(raw)
	closeErr := tmp.Close()
	if err := multierr.Combine(writeErr, closeErr); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write document %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("commit document %s: %w", key, err)
	}
	return nil
}

// Delete removes the document; deleting an absent document is fine.
func (s *Store) Delete(namespace, key string) error {
	err := os.Remove(s.path(namespace, key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) path(namespace, key string) string {
	return filepath.Join(s.dir, sanitize(namespace), sanitize(key)+".json")
}

// sanitize keeps namespaces and versioned keys filesystem-safe.
func sanitize(part string) string {
	replacer := strings.NewReplacer(":", "_", "/", "_", "\\", "_", "..", "_")
	cleaned := replacer.Replace(strings.TrimSpace(part))
	if cleaned == "" {
		return "_"
	}
	return cleaned
}
