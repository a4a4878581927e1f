package library

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/okhotin/tubedeck/app/store"
)

type importFile struct {
	Folders  []importFolder  `yaml:"folders"`
	Channels []importChannel `yaml:"channels"`
}

type importFolder struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type importChannel struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Thumbnail string `yaml:"thumbnail"`
	Folder    string `yaml:"folder"`
}

// ImportFromFile seeds the library from a YAML file. Records are added
// with if-absent semantics, so re-running the import on an existing
// library changes nothing.
func (l *Library) ImportFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var file importFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse import file %s: %w", path, err)
	}

	importedFolders := 0
	for _, f := range file.Folders {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			slog.Warn("Skipping folder with blank name in import file", "file", path)
			continue
		}
		id := f.ID
		if id == "" {
			id = uuid.NewString()
		}
		l.store.AddFolderIfAbsent(store.Folder{ID: id, Name: name})
		importedFolders++
	}

	importedChannels := 0
	for _, c := range file.Channels {
		if strings.TrimSpace(c.ID) == "" {
			slog.Warn("Skipping channel with blank id in import file", "file", path)
			continue
		}
		channel := store.Channel{
			ID:        c.ID,
			Name:      c.Name,
			Thumbnail: c.Thumbnail,
		}
		if c.Folder != "" {
			folderID := c.Folder
			channel.FolderID = &folderID
		}
		l.store.AddChannelIfAbsent(channel)
		importedChannels++
	}

	slog.Info("Import complete", "file", path,
		"folders", importedFolders, "channels", importedChannels)
	return nil
}
