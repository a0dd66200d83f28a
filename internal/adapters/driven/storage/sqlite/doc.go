// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - MeetingStore: Meeting document queries
//   - TranscriptStore: Transcript utterances and sync bookkeeping
//   - PanelStore: AI note panels and sync bookkeeping
//   - PeopleStore: People directory and document-people junction
//   - CalendarStore: Calendars and events
//   - TemplateStore / RecipeStore: Templates and recipes
//   - VectorStore: Embedded chunks and their vectors
//   - InfoStore: Store-wide statistics
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. The current version lives in PRAGMA user_version and
// advances one step per applied migration. A populated database is backed up
// next to itself before any migration runs. A database whose schema is newer
// than this build understands is opened read-only.
//
// Keyword search uses three FTS5 indexes (transcript_fts, notes_fts,
// panels_fts) kept in sync with their content tables by triggers.
//
// # Data Location
//
// By default, the database is stored at ~/.grans/grans.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
