package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore keeps each collection as a single JSON array blob keyed
// by collection name. Reads and writes go through a mutex: the store
// assumes a single logical writer and last write wins on the whole
// collection.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the library database under dataDir
// and applies pending migrations.
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "tubedeck.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The collection blobs are rewritten whole; a single connection
	// avoids SQLITE_BUSY between concurrent requests.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListChannels() []Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection[Channel](s.db, collectionChannels)
}

func (s *SQLiteStore) ReplaceChannels(channels []Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saveCollection(s.db, collectionChannels, channels)
}

func (s *SQLiteStore) AddChannelIfAbsent(channel Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	channels := loadCollection[Channel](s.db, collectionChannels)
	for _, c := range channels {
		if c.ID == channel.ID {
			return
		}
	}
	saveCollection(s.db, collectionChannels, append(channels, channel))
}

func (s *SQLiteStore) RemoveChannel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	channels := loadCollection[Channel](s.db, collectionChannels)
	kept := make([]Channel, 0, len(channels))
	for _, c := range channels {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	saveCollection(s.db, collectionChannels, kept)
}

func (s *SQLiteStore) UpdateChannelFolder(id string, folderID *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	channels := loadCollection[Channel](s.db, collectionChannels)
	updated := false
	for i := range channels {
		if channels[i].ID == id {
			channels[i].FolderID = folderID
			updated = true
			break
		}
	}
	if updated {
		saveCollection(s.db, collectionChannels, channels)
	}
}

func (s *SQLiteStore) ListFolders() []Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection[Folder](s.db, collectionFolders)
}

func (s *SQLiteStore) ReplaceFolders(folders []Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saveCollection(s.db, collectionFolders, folders)
}

func (s *SQLiteStore) AddFolderIfAbsent(folder Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders := loadCollection[Folder](s.db, collectionFolders)
	for _, f := range folders {
		if f.ID == folder.ID {
			return
		}
	}
	saveCollection(s.db, collectionFolders, append(folders, folder))
}

func (s *SQLiteStore) RemoveFolder(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders := loadCollection[Folder](s.db, collectionFolders)
	kept := make([]Folder, 0, len(folders))
	for _, f := range folders {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	saveCollection(s.db, collectionFolders, kept)
}

// loadCollection reads and decodes one collection blob. Any failure is
// logged and surfaces to the caller as an empty collection.
func loadCollection[T any](db *sql.DB, key string) []T {
	var data string
	err := db.QueryRow(`SELECT data FROM collections WHERE key = ?`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		slog.Error("Failed to read collection", "collection", key, "error", err)
		return nil
	}

	var records []T
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		slog.Error("Failed to decode collection", "collection", key, "error", err)
		return nil
	}
	return records
}

// saveCollection overwrites one collection blob. Failures are logged
// and the write is dropped.
func saveCollection[T any](db *sql.DB, key string, records []T) {
	if records == nil {
		records = []T{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		slog.Error("Failed to encode collection", "collection", key, "error", err)
		return
	}

	_, err = db.Exec(`
		INSERT INTO collections (key, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, key, string(data))
	if err != nil {
		slog.Error("Failed to write collection", "collection", key, "error", err)
	}
}
