package store

import "testing"

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)

	folderID := "f1"
	s.AddFolderIfAbsent(Folder{ID: folderID, Name: "Tech"})
	s.AddChannelIfAbsent(Channel{ID: "c1", Name: "A", Thumbnail: "https://example.com/a.jpg", FolderID: &folderID})
	s.AddChannelIfAbsent(Channel{ID: "c2", Name: "B"})

	channels := s.ListChannels()
	if len(channels) != 2 {
		t.Fatalf("Expected 2 channels, got %d", len(channels))
	}
	if channels[0].ID != "c1" || channels[1].ID != "c2" {
		t.Errorf("Insertion order lost: %+v", channels)
	}
	if channels[0].FolderID == nil || *channels[0].FolderID != "f1" {
		t.Errorf("FolderID not persisted: %+v", channels[0])
	}
	if channels[1].FolderID != nil {
		t.Errorf("Absent FolderID must stay nil: %+v", channels[1])
	}

	folders := s.ListFolders()
	if len(folders) != 1 || folders[0].Name != "Tech" {
		t.Errorf("Folder round trip failed: %+v", folders)
	}
}

func TestSQLiteStoreAddIfAbsent(t *testing.T) {
	s := newTestSQLiteStore(t)

	s.AddChannelIfAbsent(Channel{ID: "c1", Name: "Original"})
	s.AddChannelIfAbsent(Channel{ID: "c1", Name: "Duplicate"})

	channels := s.ListChannels()
	if len(channels) != 1 {
		t.Fatalf("Expected exactly one record, got %d", len(channels))
	}
	if channels[0].Name != "Original" {
		t.Errorf("Existing record must win, got %q", channels[0].Name)
	}
}

func TestSQLiteStoreUpdateChannelFolder(t *testing.T) {
	s := newTestSQLiteStore(t)

	s.AddChannelIfAbsent(Channel{ID: "c1", Name: "A"})

	folderID := "f1"
	s.UpdateChannelFolder("c1", &folderID)

	channels := s.ListChannels()
	if channels[0].FolderID == nil || *channels[0].FolderID != "f1" {
		t.Errorf("FolderID = %v, want f1", channels[0].FolderID)
	}

	s.UpdateChannelFolder("c1", nil)
	if s.ListChannels()[0].FolderID != nil {
		t.Error("Nil folder id must clear the assignment")
	}
}

func TestSQLiteStoreEmptyCollections(t *testing.T) {
	s := newTestSQLiteStore(t)

	if got := s.ListChannels(); len(got) != 0 {
		t.Errorf("Fresh store should list no channels, got %+v", got)
	}
	if got := s.ListFolders(); len(got) != 0 {
		t.Errorf("Fresh store should list no folders, got %+v", got)
	}
}

func TestSQLiteStoreDurability(t *testing.T) {
	dir := t.TempDir()

	s, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatalf("Failed to open sqlite store: %v", err)
	}
	s.AddChannelIfAbsent(Channel{ID: "c1", Name: "A"})
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatalf("Failed to reopen sqlite store: %v", err)
	}
	defer reopened.Close()

	channels := reopened.ListChannels()
	if len(channels) != 1 || channels[0].Name != "A" {
		t.Errorf("Data lost across reopen: %+v", channels)
	}
}
