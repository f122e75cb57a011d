package download

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/handiism/modfetch/internal/curseforge"
	"github.com/handiism/modfetch/internal/model"
)

// fakeCatalog serves canned metadata. failFirst makes the first n lookups
// of a project fail with an *APIError.
type fakeCatalog struct {
	mu        sync.Mutex
	projects  map[int]model.ProjectInfo
	files     map[model.ManifestEntry]model.FileInfo
	failFirst map[int]int
	fatal     map[int]bool
	calls     int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		projects:  map[int]model.ProjectInfo{},
		files:     map[model.ManifestEntry]model.FileInfo{},
		failFirst: map[int]int{},
		fatal:     map[int]bool{},
	}
}

func (c *fakeCatalog) add(entry model.ManifestEntry, slug string, allow bool, size int64) {
	c.projects[entry.ProjectID] = model.ProjectInfo{
		Name:                 slug,
		WebsiteURL:           "https://www.curseforge.com/minecraft/mc-mods/" + slug,
		AllowModDistribution: allow,
	}
	c.files[entry] = model.FileInfo{
		FileName:    slug + ".jar",
		DownloadURL: "https://edge.example.com/" + slug + ".jar",
		FileLength:  size,
	}
}

func (c *fakeCatalog) GetMod(ctx context.Context, projectID int) (model.ProjectInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++

	if c.fatal[projectID] {
		return model.ProjectInfo{}, &curseforge.DecodeError{URL: "/mods", Err: os.ErrInvalid}
	}
	if c.failFirst[projectID] > 0 {
		c.failFirst[projectID]--
		return model.ProjectInfo{}, &curseforge.APIError{URL: "/mods", Status: http.StatusServiceUnavailable}
	}
	p, ok := c.projects[projectID]
	if !ok {
		return model.ProjectInfo{}, &curseforge.APIError{URL: "/mods", Status: http.StatusNotFound}
	}
	return p, nil
}

func (c *fakeCatalog) GetModFile(ctx context.Context, projectID, fileID int) (model.FileInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++

	f, ok := c.files[model.ManifestEntry{ProjectID: projectID, FileID: fileID}]
	if !ok {
		return model.FileInfo{}, &curseforge.APIError{URL: "/files", Status: http.StatusNotFound}
	}
	return f, nil
}

// fakeDownloader writes size bytes of filler for every URL unless a status
// override is configured for it.
type fakeDownloader struct {
	mu     sync.Mutex
	sizes  map[string]int64
	status map[string]int
	calls  []string
}

func newFakeDownloader() *fakeDownloader {
	return &fakeDownloader{sizes: map[string]int64{}, status: map[string]int{}}
}

func (d *fakeDownloader) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (int, error) {
	d.mu.Lock()
	d.calls = append(d.calls, url)
	status, ok := d.status[url]
	size := d.sizes[url]
	d.mu.Unlock()

	if ok && status != http.StatusOK {
		return status, nil
	}
	if err := os.WriteFile(destPath, []byte(strings.Repeat("x", int(size))), 0644); err != nil {
		return 0, err
	}
	if onProgress != nil {
		onProgress(size, size)
	}
	return http.StatusOK, nil
}

func (d *fakeDownloader) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}
