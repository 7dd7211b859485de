package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultPrefsPath = "~/.config/bookfinder/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

type document struct {
	Strings map[string]string   `toml:"strings"`
	Lists   map[string][]string `toml:"lists"`
}

// FileStore persists preferences in a TOML file. Entries are cached in memory
// and every write rewrites the whole file.
type FileStore struct {
	mu   sync.Mutex
	path string
	doc  document
}

// OpenFileStore loads the store at path (DefaultPath when empty). A missing
// file yields an empty store; an unreadable or corrupt one is an error.
func OpenFileStore(path string) (*FileStore, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	s := &FileStore{
		path: resolved,
		doc:  document{Strings: map[string]string{}, Lists: map[string][]string{}},
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read prefs: %w", err)
	}

	if err := toml.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("parse prefs: %w", err)
	}
	if s.doc.Strings == nil {
		s.doc.Strings = map[string]string{}
	}
	if s.doc.Lists == nil {
		s.doc.Lists = map[string][]string{}
	}

	return s, nil
}

// Path returns the resolved file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) GetString(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.doc.Strings[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *FileStore) SetString(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.doc.Strings[key]
	s.doc.Strings[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.doc.Strings[key] = prev
		} else {
			delete(s.doc.Strings, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) GetStringList(key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.doc.Lists[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]string{}, v...), nil
}

func (s *FileStore) SetStringList(key string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.doc.Lists[key]
	s.doc.Lists[key] = append([]string{}, values...)
	if err := s.flush(); err != nil {
		if had {
			s.doc.Lists[key] = prev
		} else {
			delete(s.doc.Lists, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevString, hadString := s.doc.Strings[key]
	prevList, hadList := s.doc.Lists[key]
	if !hadString && !hadList {
		return nil
	}

	delete(s.doc.Strings, key)
	delete(s.doc.Lists, key)
	if err := s.flush(); err != nil {
		if hadString {
			s.doc.Strings[key] = prevString
		}
		if hadList {
			s.doc.Lists[key] = prevList
		}
		return err
	}
	return nil
}

// flush writes the document through a temp file and rename so readers never
// see a partial file. Callers hold s.mu.
func (s *FileStore) flush() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs_tmp_")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
