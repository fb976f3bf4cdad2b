package cloudstore

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCS lists receipt files in a Google Cloud Storage bucket. Objects under
// a prefix are presented as a folder listing: sub-prefixes become folder
// entries, objects with accepted extensions become file entries.
type GCS struct {
	client *storage.Client
	bucket string
}

// NewGCS creates a lister for the given bucket. It assumes Application
// Default Credentials are configured.
func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

// List implements Lister. folder may be "" or "/" for the bucket root.
func (g *GCS) List(ctx context.Context, folder string) ([]Entry, error) {
	prefix := normalizePrefix(folder)

	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{
		Prefix:    prefix,
		Delimiter: "/",
	})

	var entries []Entry
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list objects in %s/%s: %w", g.bucket, prefix, err)
		}

		if attrs.Prefix != "" {
			entries = append(entries, Entry{
				Name:   path.Base(strings.TrimSuffix(attrs.Prefix, "/")),
				Path:   attrs.Prefix,
				Folder: true,
			})
			continue
		}
		if attrs.Name == prefix || !processable(attrs.Name) {
			continue
		}
		entries = append(entries, Entry{
			Name: path.Base(attrs.Name),
			Path: attrs.Name,
			Size: attrs.Size,
		})
	}

	// Folders first, then files, each alphabetical.
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].Folder != entries[b].Folder {
			return entries[a].Folder
		}
		return entries[a].Name < entries[b].Name
	})
	return entries, nil
}

// Close releases the underlying storage client.
func (g *GCS) Close() error {
	return g.client.Close()
}

// normalizePrefix converts a user-facing folder path into a GCS prefix:
// "" or "/" mean the root, everything else gets a trailing slash.
func normalizePrefix(folder string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return ""
	}
	return folder + "/"
}
