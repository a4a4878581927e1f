// Package store persists the channel and folder collections. Each
// collection is kept as one ordered document; every mutation rewrites
// the whole collection and is immediately durable.
package store

// Store is the channel/folder document store. None of the methods
// report errors: when the underlying medium is unavailable, reads
// return empty sequences and writes are dropped after logging. This
// mirrors the availability contract of browser-local persistence the
// collections originally lived in, and keeps callers free of error
// plumbing for a medium they cannot repair.
type Store interface {
	ListChannels() []Channel
	ReplaceChannels(channels []Channel)
	AddChannelIfAbsent(channel Channel)
	RemoveChannel(id string)
	// UpdateChannelFolder merges the folder assignment into the
	// matching channel; no-op when the id is absent. A nil folderID
	// clears the assignment.
	UpdateChannelFolder(id string, folderID *string)

	ListFolders() []Folder
	ReplaceFolders(folders []Folder)
	AddFolderIfAbsent(folder Folder)
	RemoveFolder(id string)

	Close() error
}

const (
	collectionChannels = "channels"
	collectionFolders  = "folders"
)
