// Package cloudstore lists receipt files in cloud storage. The core only
// consumes the file-path values of non-folder entries; everything else is
// presentation.
package cloudstore

import (
	"context"
	"path"
	"strings"
)

// Entry is one item in a storage folder, either a file or a sub-folder.
type Entry struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Folder bool   `json:"is_folder"`
}

// Lister lists the entries of one storage folder.
type Lister interface {
	List(ctx context.Context, folder string) ([]Entry, error)
}

// imageExtensions are the file types the extraction service accepts.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".pdf":  true,
}

// processable reports whether the file name has an accepted extension.
func processable(name string) bool {
	return imageExtensions[strings.ToLower(path.Ext(name))]
}

// FilePaths returns the paths of the non-folder entries, in listing order.
func FilePaths(entries []Entry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Folder {
			continue
		}
		paths = append(paths, e.Path)
	}
	return paths
}
