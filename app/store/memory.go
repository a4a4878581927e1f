package store

import "sync"

var _ Store = (*MemoryStore)(nil)

// MemoryStore holds the collections in process memory. It backs tests
// and the no-persistence fallback when the database cannot be opened;
// in that mode the library is lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	channels []Channel
	folders  []Folder
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) ListChannels() []Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Channel, len(s.channels))
	copy(out, s.channels)
	return out
}

func (s *MemoryStore) ReplaceChannels(channels []Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels = make([]Channel, len(channels))
	copy(s.channels, channels)
}

func (s *MemoryStore) AddChannelIfAbsent(channel Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.channels {
		if c.ID == channel.ID {
			return
		}
	}
	s.channels = append(s.channels, channel)
}

func (s *MemoryStore) RemoveChannel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.channels[:0]
	for _, c := range s.channels {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.channels = kept
}

func (s *MemoryStore) UpdateChannelFolder(id string, folderID *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.channels {
		if s.channels[i].ID == id {
			s.channels[i].FolderID = folderID
			return
		}
	}
}

func (s *MemoryStore) ListFolders() []Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Folder, len(s.folders))
	copy(out, s.folders)
	return out
}

func (s *MemoryStore) ReplaceFolders(folders []Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folders = make([]Folder, len(folders))
	copy(s.folders, folders)
}

func (s *MemoryStore) AddFolderIfAbsent(folder Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.folders {
		if f.ID == folder.ID {
			return
		}
	}
	s.folders = append(s.folders, folder)
}

func (s *MemoryStore) RemoveFolder(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.folders[:0]
	for _, f := range s.folders {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	s.folders = kept
}
