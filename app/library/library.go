// Package library enforces the folder-membership rules of the channel
// collection on top of the store.
package library

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/okhotin/tubedeck/app/errs"
	"github.com/okhotin/tubedeck/app/store"
)

type Library struct {
	store store.Store
}

func New(s store.Store) *Library {
	return &Library{store: s}
}

func (l *Library) Channels() []store.Channel {
	return l.store.ListChannels()
}

func (l *Library) Folders() []store.Folder {
	return l.store.ListFolders()
}

// AddChannel adds an accepted candidate to the library. Adding a
// channel id that is already tracked is a no-op, so accepting the same
// candidate twice leaves a single record.
func (l *Library) AddChannel(channel store.Channel) error {
	if strings.TrimSpace(channel.ID) == "" {
		return errs.NewValidationError("channel id", "is required")
	}
	channel.Name = norm.NFC.String(channel.Name)
	l.store.AddChannelIfAbsent(channel)
	return nil
}

// RemoveChannel removes a channel. Channels are leaves; nothing
// cascades.
func (l *Library) RemoveChannel(id string) {
	l.store.RemoveChannel(id)
}

// AssignChannel moves a channel into a folder, or to the root when
// folderID is nil. The folder id is not validated against existing
// folders; a dangling assignment renders as unassigned.
func (l *Library) AssignChannel(id string, folderID *string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValidationError("channel id", "is required")
	}
	l.store.UpdateChannelFolder(id, folderID)
	return nil
}

// CreateFolder creates a folder with a generated unique id. Blank or
// whitespace-only names are rejected before anything is written.
func (l *Library) CreateFolder(name string) (*store.Folder, error) {
	name = strings.TrimSpace(norm.NFC.String(name))
	if name == "" {
		return nil, errs.NewValidationError("folder name", "is required")
	}

	folder := store.Folder{
		ID:   uuid.NewString(),
		Name: name,
	}
	l.store.AddFolderIfAbsent(folder)
	return &folder, nil
}

// DeleteFolder removes a folder. The cascade runs first: every channel
// pointing at the folder is reassigned to the root in one collection
// write, then the folder record goes away, so no caller observes a
// channel pointing at a deleted folder. Channels are never deleted by
// the cascade.
func (l *Library) DeleteFolder(id string) {
	channels := l.store.ListChannels()
	moved := 0
	for i := range channels {
		if channels[i].FolderID != nil && *channels[i].FolderID == id {
			channels[i].FolderID = nil
			moved++
		}
	}
	if moved > 0 {
		l.store.ReplaceChannels(channels)
	}

	l.store.RemoveFolder(id)

	if moved > 0 {
		slog.Debug("Folder cascade complete", "folder", id, "channels_moved", moved)
	}
}

// ChannelsInFolder filters channels by membership. A nil folderID
// selects the unassigned (root) set.
func (l *Library) ChannelsInFolder(folderID *string) []store.Channel {
	channels := l.store.ListChannels()
	filtered := make([]store.Channel, 0, len(channels))
	for _, c := range channels {
		switch {
		case folderID == nil && c.FolderID == nil:
			filtered = append(filtered, c)
		case folderID != nil && c.FolderID != nil && *c.FolderID == *folderID:
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// ChannelIDs resolves a feed scope to the channel ids it covers: every
// channel when all is set, otherwise one folder or the root set.
func (l *Library) ChannelIDs(folderID *string, all bool) []string {
	var channels []store.Channel
	if all {
		channels = l.store.ListChannels()
	} else {
		channels = l.ChannelsInFolder(folderID)
	}

	ids := make([]string, 0, len(channels))
	for _, c := range channels {
		ids = append(ids, c.ID)
	}
	return ids
}
