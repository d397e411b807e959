// Package prefs persists the site's single user preference, the color
// scheme, in a bbolt file.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	darkmode "github.com/thiagokokada/dark-mode-go"
	bolt "go.etcd.io/bbolt"

	"github.com/Sumatoshi-tech/locmeta/pkg/plotpage"
)

// Key is the preference key of the color scheme.
const Key = "preferred-color-scheme"

const (
	bucketName  = "prefs"
	openTimeout = time.Second
	fileMode    = 0o600
	dirMode     = 0o755
)

// ErrInvalidScheme is returned for values other than auto, light or dark.
var ErrInvalidScheme = errors.New("invalid color scheme")

// Scheme is a color scheme preference.
type Scheme string

const (
	// SchemeAuto follows the operating system.
	SchemeAuto Scheme = "auto"
	// SchemeLight forces the light theme.
	SchemeLight Scheme = "light"
	// SchemeDark forces the dark theme.
	SchemeDark Scheme = "dark"
)

// ParseScheme validates a scheme name, ignoring case and surrounding space.
func ParseScheme(raw string) (Scheme, error) {
	switch s := Scheme(strings.ToLower(strings.TrimSpace(raw))); s {
	case SchemeAuto, SchemeLight, SchemeDark:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidScheme, raw)
	}
}

// Detector reports whether the operating system prefers a dark theme.
type Detector func() (bool, error)

// DetectOS asks the desktop environment for its theme.
var DetectOS Detector = darkmode.IsDarkMode

// Resolve maps a scheme to a concrete theme. Auto consults detect and falls
// back to light when detection is unavailable or fails.
func Resolve(s Scheme, detect Detector) plotpage.Theme {
	switch s {
	case SchemeDark:
		return plotpage.ThemeDark
	case SchemeLight:
		return plotpage.ThemeLight
	case SchemeAuto:
	}

	if detect != nil {
		if dark, err := detect(); err == nil && dark {
			return plotpage.ThemeDark
		}
	}

	return plotpage.ThemeLight
}

// Store is a bbolt-backed preference store.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}

	db, err := bolt.Open(path, fileMode, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open prefs %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the store file.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close prefs: %w", err)
	}

	return nil
}

// Scheme returns the stored scheme, or fallback when none is stored.
func (s *Store) Scheme(fallback Scheme) (Scheme, error) {
	var raw []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket([]byte(bucketName)); b != nil {
			raw = append(raw, b.Get([]byte(Key))...)
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("read %s: %w", Key, err)
	}

	if raw == nil {
		return fallback, nil
	}

	return ParseScheme(string(raw))
}

// SetScheme stores the scheme.
func (s *Store) SetScheme(scheme Scheme) error {
	if _, err := ParseScheme(string(scheme)); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}

		return b.Put([]byte(Key), []byte(scheme))
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", Key, err)
	}

	return nil
}
