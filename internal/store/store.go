// Package store implements a keyed-JSON-document collection backed by plain
// files. Each store file holds a single JSON object mapping a generated id to
// a document; documents are matched by field value with a linear scan. All
// read-modify-write sequences against one path are serialized by a per-path
// exclusive lock, so concurrent writers cannot lose updates.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// ErrNotFound is returned when no document matches the requested field value.
var ErrNotFound = errors.New("document not found")

// Document is one schemaless record. Field values submitted as form fields
// are strings; matching compares string values.
type Document map[string]any

// Documents is a full store file: generated id to document.
type Documents map[string]Document

// Store owns every record file under its root. Paths passed to its methods
// are relative to the root.
type Store struct {
	root   string
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New builds a store rooted at dir.
func New(dir string, logger *zap.Logger) *Store {
	return &Store{
		root:   dir,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Root returns the directory all store paths are resolved against.
func (s *Store) Root() string {
	return s.root
}

// lockFor returns the exclusive lock owning the given store path.
func (s *Store) lockFor(path string) *sync.Mutex {
	key := filepath.Clean(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

func (s *Store) resolve(path string) string {
	return filepath.Join(s.root, path)
}

// load reads a store file. A missing, empty, or unparsable file self-heals to
// an empty mapping; the recovered flag reports when prior content was
// discarded that way. This is a deliberate lossy policy: corrupt content is
// not preserved.
func (s *Store) load(path string) (Documents, bool, error) {
	full := s.resolve(path)

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return Documents{}, false, nil
		}
		return nil, false, fmt.Errorf("read store %s: %w", path, err)
	}
	if len(data) == 0 {
		return Documents{}, false, nil
	}

	var docs Documents
	if err := json.Unmarshal(data, &docs); err != nil {
		s.logger.Warn("store content unreadable, reinitializing",
			zap.String("path", path), zap.Error(err))
		return Documents{}, true, nil
	}
	if docs == nil {
		docs = Documents{}
	}
	return docs, false, nil
}

// save writes the full collection back, creating parent directories lazily.
func (s *Store) save(path string, docs Documents) error {
	full := s.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create store dir for %s: %w", path, err)
	}

	data, err := json.MarshalIndent(docs, "", "    ")
	if err != nil {
		return fmt.Errorf("encode store %s: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write store %s: %w", path, err)
	}
	return nil
}

// List returns every document in the store along with the recovered flag of
// the underlying read.
func (s *Store) List(path string) (Documents, bool, error) {
	lock := s.lockFor(path)
	lock.Lock()
	defer lock.Unlock()

	return s.load(path)
}

// FindByField returns the first document whose field equals value, or
// ErrNotFound.
func (s *Store) FindByField(path, field, value string) (Document, error) {
	lock := s.lockFor(path)
	lock.Lock()
	defer lock.Unlock()

	docs, _, err := s.load(path)
	if err != nil {
		return nil, err
	}
	if doc := scan(docs, field, value); doc != nil {
		return doc, nil
	}
	return nil, ErrNotFound
}

// Exists reports whether any document has the given field value.
func (s *Store) Exists(path, field, value string) (bool, error) {
	lock := s.lockFor(path)
	lock.Lock()
	defer lock.Unlock()

	docs, _, err := s.load(path)
	if err != nil {
		return false, err
	}
	return scan(docs, field, value) != nil, nil
}

// Insert appends the document under the next sequential id and returns it.
func (s *Store) Insert(path string, doc Document) (string, error) {
	lock := s.lockFor(path)
	lock.Lock()
	defer lock.Unlock()

	docs, _, err := s.load(path)
	if err != nil {
		return "", err
	}
	id := fmt.Sprintf("Entry%d", len(docs)+1)
	docs[id] = doc
	if err := s.save(path, docs); err != nil {
		return "", err
	}
	return id, nil
}

// Update replaces the first document whose matchField equals matchValue,
// keeping its id. It reports whether a document was replaced.
func (s *Store) Update(path string, doc Document, matchField, matchValue string) (bool, error) {
	lock := s.lockFor(path)
	lock.Lock()
	defer lock.Unlock()

	docs, _, err := s.load(path)
	if err != nil {
		return false, err
	}
	for id, existing := range docs {
		if fieldEquals(existing, matchField, matchValue) {
			docs[id] = doc
			if err := s.save(path, docs); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the first document whose matchField equals matchValue. It
// reports whether a document was removed; the store is not rewritten on a
// miss.
func (s *Store) Delete(path, matchField, matchValue string) (bool, error) {
	lock := s.lockFor(path)
	lock.Lock()
	defer lock.Unlock()

	docs, _, err := s.load(path)
	if err != nil {
		return false, err
	}
	for id, existing := range docs {
		if fieldEquals(existing, matchField, matchValue) {
			delete(docs, id)
			if err := s.save(path, docs); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func scan(docs Documents, field, value string) Document {
	for _, doc := range docs {
		if fieldEquals(doc, field, value) {
			return doc
		}
	}
	return nil
}

func fieldEquals(doc Document, field, value string) bool {
	v, ok := doc[field].(string)
	return ok && v == value
}
