package sqlite

import (
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/grans-labs/grans-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driven"
	"github.com/grans-labs/grans-cli/internal/logger"
)

// backupTimestampLayout names migration backup files, UTC.
const backupTimestampLayout = "20060102T150405"

// Store is a unified SQLite-based storage that provides access to all
// content store interfaces through wrapper types.
type Store struct {
	db       *sql.DB
	path     string
	readOnly bool
}

// DefaultPath returns the default database location, ~/.grans/grans.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".grans", "grans.db"), nil
}

// NewStore opens (creating if needed) the database at path and applies any
// pending migrations. An empty path resolves to DefaultPath.
func NewStore(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	existed := true
	if _, err := os.Stat(path); os.IsNotExist(err) {
		existed = false
		fmt.Fprintf(os.Stderr, "[grans] Creating new database at %s\n", path)
	}

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: path}

	if err := s.migrate(migrations.FS, existed); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ReadOnly reports whether the store refuses writes because its schema is
// newer than this build understands.
func (s *Store) ReadOnly() bool {
	return s.readOnly
}

// SchemaVersion returns the database's current schema version.
func (s *Store) SchemaVersion() (int, error) {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// MeetingStore returns a MeetingStore interface backed by this store.
func (s *Store) MeetingStore() driven.MeetingStore {
	return &meetingStore{store: s}
}

// TranscriptStore returns a TranscriptStore interface backed by this store.
func (s *Store) TranscriptStore() driven.TranscriptStore {
	return &transcriptStore{store: s}
}

// PanelStore returns a PanelStore interface backed by this store.
func (s *Store) PanelStore() driven.PanelStore {
	return &panelStore{store: s}
}

// PeopleStore returns a PeopleStore interface backed by this store.
func (s *Store) PeopleStore() driven.PeopleStore {
	return &peopleStore{store: s}
}

// CalendarStore returns a CalendarStore interface backed by this store.
func (s *Store) CalendarStore() driven.CalendarStore {
	return &calendarStore{store: s}
}

// TemplateStore returns a TemplateStore interface backed by this store.
func (s *Store) TemplateStore() driven.TemplateStore {
	return &templateStore{store: s}
}

// RecipeStore returns a RecipeStore interface backed by this store.
func (s *Store) RecipeStore() driven.RecipeStore {
	return &recipeStore{store: s}
}

// VectorStore returns a VectorStore interface backed by this store.
func (s *Store) VectorStore() driven.VectorStore {
	return &vectorStore{store: s}
}

// InfoStore returns an InfoStore interface backed by this store.
func (s *Store) InfoStore() driven.InfoStore {
	return &infoStore{store: s}
}

// checkWritable guards mutating operations against a future-schema store.
func (s *Store) checkWritable() error {
	if s.readOnly {
		return domain.ErrReadOnly
	}
	return nil
}

// migrate applies pending migrations, advancing PRAGMA user_version one
// step per migration. A database whose schema is newer than this build's
// latest migration is opened read-only instead of being touched.
func (s *Store) migrate(fsys embed.FS, existed bool) error {
	currentVersion, err := s.SchemaVersion()
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	latest := 0
	var pending []string
	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version > latest {
			latest = version
		}
		if version > currentVersion {
			pending = append(pending, name)
		}
	}

	if currentVersion > latest {
		fmt.Fprintf(os.Stderr,
			"[grans] Database schema version %d is newer than this build supports (%d); opening read-only\n",
			currentVersion, latest)
		s.readOnly = true
		return nil
	}

	if len(pending) == 0 {
		return nil
	}

	// A populated database gets a backup before its schema changes. A
	// fresh file has nothing worth preserving.
	if existed && currentVersion > 0 {
		backupPath := fmt.Sprintf("%s.backup.%s", s.path, time.Now().UTC().Format(backupTimestampLayout))
		if err := copyFile(s.path, backupPath); err != nil {
			return fmt.Errorf("backing up database: %w", err)
		}
		logger.Debug("database backed up to %s", backupPath)
	}

	// A fresh database already announced its creation; only an existing
	// one gets the migration notice.
	if existed {
		fmt.Fprintln(os.Stderr, "[grans] Applying database migration(s)...")
	}

	for _, name := range pending {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("%w: executing %s: %v", domain.ErrMigrationFailed, name, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("%w: setting version for %s: %v", domain.ErrMigrationFailed, name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
		logger.Debug("applied migration %s", name)
	}

	return nil
}

// copyFile copies src to dst, used for pre-migration backups.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ==================== Helper Functions ====================

// sanitizeFTSQuery wraps the user's query in FTS5 string-literal quotes so
// operators and punctuation are matched literally. Embedded quotes are
// stripped rather than doubled to keep the token stream simple.
func sanitizeFTSQuery(query string) string {
	return `"` + strings.ReplaceAll(query, `"`, "") + `"`
}

// float32SliceToBytes converts a []float32 to a little-endian byte blob.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a little-endian byte blob back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// nullableString maps an empty string to NULL for storage.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullablePtr maps a nil pointer to NULL for storage.
func nullablePtr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
