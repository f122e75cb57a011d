// Package manifest decodes CurseForge modpack manifests into the ordered
// list of entries the downloader works on.
//
//	entries, err := manifest.Load("manifest.json")
//	result, err := manager.Run(ctx, entries)
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/handiism/modfetch/internal/model"
)

// Manifest is the subset of a modpack manifest.json that modfetch reads.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Files   []File `json:"files"`
}

// File is one entry of the manifest "files" array.
type File struct {
	ProjectID int   `json:"projectID"`
	FileID    int   `json:"fileID"`
	Required  *bool `json:"required"`
}

// Load reads and decodes the manifest at path.
func Load(path string) ([]model.ManifestEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Decode parses a manifest and returns its entries in manifest order.
//
// Both IDs must be positive. A pair listed more than once is kept at its
// first position only.
func Decode(r io.Reader) ([]model.ManifestEntry, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return m.Entries()
}

// Entries validates the files of m and converts them to manifest entries.
func (m *Manifest) Entries() ([]model.ManifestEntry, error) {
	seen := make(map[model.ManifestEntry]bool, len(m.Files))
	entries := make([]model.ManifestEntry, 0, len(m.Files))

	for i, f := range m.Files {
		if f.ProjectID <= 0 || f.FileID <= 0 {
			return nil, fmt.Errorf("files[%d]: invalid projectID %d / fileID %d", i, f.ProjectID, f.FileID)
		}

		entry := model.ManifestEntry{ProjectID: f.ProjectID, FileID: f.FileID}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		entries = append(entries, entry)
	}
	return entries, nil
}
