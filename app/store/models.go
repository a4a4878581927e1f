package store

// Channel is a tracked creator identity on the platform. ID is the
// opaque platform channel identifier and is unique in the collection.
// A FolderID pointing at a folder that no longer exists is tolerated
// and treated as unassigned; it is never auto-repaired.
type Channel struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	FolderID  *string `json:"folderId,omitempty"`
}

// Folder is a user-defined grouping of channels. ParentID is declared
// for forward compatibility; folders are flat in practice.
type Folder struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId,omitempty"`
}
