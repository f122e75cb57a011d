package download

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sync/atomic"

	"github.com/handiism/modfetch/internal/curseforge"
	ioutils "github.com/handiism/modfetch/internal/io"
	"github.com/handiism/modfetch/internal/model"
)

// Catalog looks up project and file metadata.
type Catalog interface {
	GetMod(ctx context.Context, projectID int) (model.ProjectInfo, error)
	GetModFile(ctx context.Context, projectID, fileID int) (model.FileInfo, error)
}

// Downloader saves a URL to a local path and reports the HTTP status.
type Downloader interface {
	DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (int, error)
}

// Fetcher resolves and downloads a single manifest entry.
type Fetcher struct {
	catalog    Catalog
	downloader Downloader
	outDir     string
	onProgress func(ProgressEvent)

	receivedBytes int64
}

// NewFetcher creates a Fetcher saving files into outDir.
func NewFetcher(catalog Catalog, downloader Downloader, outDir string, onProgress func(ProgressEvent)) *Fetcher {
	return &Fetcher{
		catalog:    catalog,
		downloader: downloader,
		outDir:     outDir,
		onProgress: onProgress,
	}
}

// Fetch looks up the project and file, then downloads the file unless
// distribution is restricted or a file of the expected size is already
// present.
//
// Catalog and download failures are returned as model.TransientFailure.
// The error return is reserved for conditions retrying cannot fix: a
// cancelled context, an undecodable catalog response or an unusable file
// name.
func (f *Fetcher) Fetch(ctx context.Context, entry model.ManifestEntry) (model.Outcome, error) {
	project, err := f.catalog.GetMod(ctx, entry.ProjectID)
	if err != nil {
		return f.failure(ctx, entry, err)
	}
	f.progress(ProgressEvent{Message: project.WebsiteURL, Level: LevelVerbose})

	category := model.Category(project.WebsiteURL)

	file, err := f.catalog.GetModFile(ctx, entry.ProjectID, entry.FileID)
	if err != nil {
		return f.failure(ctx, entry, err)
	}

	name := ioutils.SafeFileName(file.FileName)
	if name == "" {
		return nil, fmt.Errorf("%s: unusable file name %q", entry, file.FileName)
	}
	outFile := filepath.Join(f.outDir, name)

	if !project.AllowModDistribution {
		f.progress(ProgressEvent{Message: fmt.Sprintf("Distribution disabled for %s", name), Level: LevelWarning})
		return model.DistributionBlocked{
			Entry:     entry,
			ManualURL: model.ManualURL(project.WebsiteURL, entry.FileID),
			Path:      outFile,
			Category:  category,
		}, nil
	}

	if ioutils.SizeMatches(outFile, file.FileLength) {
		f.progress(ProgressEvent{Message: fmt.Sprintf("%s OK", name), Level: LevelVerbose})
		return model.Success{Path: outFile, Category: category}, nil
	}

	var last int64
	status, err := f.downloader.DownloadFile(ctx, file.DownloadURL, outFile, func(written, total int64) {
		atomic.AddInt64(&f.receivedBytes, written-last)
		last = written
	})
	if err != nil {
		return f.failure(ctx, entry, err)
	}
	if status != http.StatusOK {
		return f.failure(ctx, entry, fmt.Errorf("download failed (error %d)", status))
	}

	f.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", name), Level: LevelVerbose})
	return model.Success{Path: outFile, Category: category}, nil
}

// ReceivedBytes returns the number of bytes downloaded so far.
func (f *Fetcher) ReceivedBytes() int64 {
	return atomic.LoadInt64(&f.receivedBytes)
}

func (f *Fetcher) failure(ctx context.Context, entry model.ManifestEntry, err error) (model.Outcome, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if curseforge.IsFatal(err) {
		return nil, err
	}
	f.progress(ProgressEvent{Message: fmt.Sprintf("Fetch failed for %s: %v", entry, err), Level: LevelWarning})
	return model.TransientFailure{Entry: entry, Err: err}, nil
}

func (f *Fetcher) progress(event ProgressEvent) {
	if f.onProgress != nil {
		f.onProgress(event)
	}
}
