package store

import "testing"

func TestMemoryStoreInsertionOrder(t *testing.T) {
	s := NewMemoryStore()

	s.AddChannelIfAbsent(Channel{ID: "c1", Name: "First"})
	s.AddChannelIfAbsent(Channel{ID: "c2", Name: "Second"})
	s.AddChannelIfAbsent(Channel{ID: "c3", Name: "Third"})

	channels := s.ListChannels()
	if len(channels) != 3 {
		t.Fatalf("Expected 3 channels, got %d", len(channels))
	}
	for i, want := range []string{"c1", "c2", "c3"} {
		if channels[i].ID != want {
			t.Errorf("channels[%d].ID = %s, want %s", i, channels[i].ID, want)
		}
	}
}

func TestMemoryStoreAddIfAbsent(t *testing.T) {
	s := NewMemoryStore()

	s.AddChannelIfAbsent(Channel{ID: "c1", Name: "Original"})
	s.AddChannelIfAbsent(Channel{ID: "c1", Name: "Duplicate"})

	channels := s.ListChannels()
	if len(channels) != 1 {
		t.Fatalf("Expected exactly one record, got %d", len(channels))
	}
	if channels[0].Name != "Original" {
		t.Errorf("Existing record must win, got name %q", channels[0].Name)
	}
}

func TestMemoryStoreRemoveAbsent(t *testing.T) {
	s := NewMemoryStore()
	s.AddChannelIfAbsent(Channel{ID: "c1"})

	// Removing a missing id is a no-op, not an error.
	s.RemoveChannel("nope")
	s.RemoveFolder("nope")

	if len(s.ListChannels()) != 1 {
		t.Error("Unrelated records must survive a no-op remove")
	}
}

func TestMemoryStoreUpdateChannelFolder(t *testing.T) {
	s := NewMemoryStore()
	s.AddChannelIfAbsent(Channel{ID: "c1", Name: "A"})

	folderID := "f1"
	s.UpdateChannelFolder("c1", &folderID)

	channels := s.ListChannels()
	if channels[0].FolderID == nil || *channels[0].FolderID != "f1" {
		t.Errorf("FolderID = %v, want f1", channels[0].FolderID)
	}
	if channels[0].Name != "A" {
		t.Error("Update must merge, not replace the record")
	}

	// Unknown id is a no-op.
	s.UpdateChannelFolder("nope", &folderID)
	if len(s.ListChannels()) != 1 {
		t.Error("Update of a missing id must not create records")
	}
}

func TestMemoryStoreReplaceAll(t *testing.T) {
	s := NewMemoryStore()
	s.AddChannelIfAbsent(Channel{ID: "c1"})
	s.AddChannelIfAbsent(Channel{ID: "c2"})

	s.ReplaceChannels([]Channel{{ID: "c3"}})

	channels := s.ListChannels()
	if len(channels) != 1 || channels[0].ID != "c3" {
		t.Errorf("ReplaceChannels must overwrite the collection, got %+v", channels)
	}
}

func TestMemoryStoreFolders(t *testing.T) {
	s := NewMemoryStore()

	s.AddFolderIfAbsent(Folder{ID: "f1", Name: "Tech"})
	s.AddFolderIfAbsent(Folder{ID: "f1", Name: "Duplicate"})
	s.AddFolderIfAbsent(Folder{ID: "f2", Name: "Music"})

	folders := s.ListFolders()
	if len(folders) != 2 {
		t.Fatalf("Expected 2 folders, got %d", len(folders))
	}

	s.RemoveFolder("f1")
	folders = s.ListFolders()
	if len(folders) != 1 || folders[0].ID != "f2" {
		t.Errorf("Expected only f2 left, got %+v", folders)
	}
}

func TestMemoryStoreListCopies(t *testing.T) {
	s := NewMemoryStore()
	s.AddChannelIfAbsent(Channel{ID: "c1", Name: "A"})

	channels := s.ListChannels()
	channels[0].Name = "mutated"

	if s.ListChannels()[0].Name != "A" {
		t.Error("List must return a copy, not the backing slice")
	}
}
