package download

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/modfetch/internal/curseforge"
	"github.com/handiism/modfetch/internal/model"
)

func TestFetcher_Downloads(t *testing.T) {
	dir := t.TempDir()
	entry := model.ManifestEntry{ProjectID: 1, FileID: 10}

	catalog := newFakeCatalog()
	catalog.add(entry, "name", true, 4)
	downloader := newFakeDownloader()
	downloader.sizes["https://edge.example.com/name.jar"] = 4

	f := NewFetcher(catalog, downloader, dir, nil)
	outcome, err := f.Fetch(context.Background(), entry)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	want := model.Success{Path: filepath.Join(dir, "name.jar"), Category: "mc-mods"}
	if outcome != want {
		t.Errorf("Fetch() = %#v, want %#v", outcome, want)
	}
	if downloader.callCount() != 1 {
		t.Errorf("download called %d times, want 1", downloader.callCount())
	}
	if f.ReceivedBytes() != 4 {
		t.Errorf("ReceivedBytes() = %d, want 4", f.ReceivedBytes())
	}
}

func TestFetcher_SkipsExistingFile(t *testing.T) {
	dir := t.TempDir()
	entry := model.ManifestEntry{ProjectID: 1, FileID: 10}

	catalog := newFakeCatalog()
	catalog.add(entry, "present", true, 5)
	if err := os.WriteFile(filepath.Join(dir, "present.jar"), []byte("12345"), 0644); err != nil {
		t.Fatal(err)
	}
	downloader := newFakeDownloader()

	outcome, err := NewFetcher(catalog, downloader, dir, nil).Fetch(context.Background(), entry)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if _, ok := outcome.(model.Success); !ok {
		t.Errorf("Fetch() = %#v, want Success", outcome)
	}
	if downloader.callCount() != 0 {
		t.Error("download must not run when the file is already complete")
	}
}

func TestFetcher_RedownloadsSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	entry := model.ManifestEntry{ProjectID: 1, FileID: 10}

	catalog := newFakeCatalog()
	catalog.add(entry, "partial", true, 5)
	if err := os.WriteFile(filepath.Join(dir, "partial.jar"), []byte("12"), 0644); err != nil {
		t.Fatal(err)
	}
	downloader := newFakeDownloader()
	downloader.sizes["https://edge.example.com/partial.jar"] = 5

	if _, err := NewFetcher(catalog, downloader, dir, nil).Fetch(context.Background(), entry); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if downloader.callCount() != 1 {
		t.Errorf("download called %d times, want 1", downloader.callCount())
	}
}

func TestFetcher_DistributionBlocked(t *testing.T) {
	dir := t.TempDir()
	entry := model.ManifestEntry{ProjectID: 7, FileID: 42}

	catalog := newFakeCatalog()
	catalog.add(entry, "foo", false, 5)
	downloader := newFakeDownloader()

	var events []ProgressEvent
	f := NewFetcher(catalog, downloader, dir, func(e ProgressEvent) { events = append(events, e) })

	outcome, err := f.Fetch(context.Background(), entry)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	blocked, ok := outcome.(model.DistributionBlocked)
	if !ok {
		t.Fatalf("Fetch() = %#v, want DistributionBlocked", outcome)
	}
	if blocked.ManualURL != "https://legacy.curseforge.com/minecraft/mc-mods/foo/download/42" {
		t.Errorf("ManualURL = %q", blocked.ManualURL)
	}
	if blocked.Path != filepath.Join(dir, "foo.jar") || blocked.Category != "mc-mods" || blocked.Entry != entry {
		t.Errorf("DistributionBlocked = %#v", blocked)
	}
	if downloader.callCount() != 0 {
		t.Error("download must not run for a distribution-blocked file")
	}

	warned := false
	for _, e := range events {
		if e.Level == LevelWarning {
			warned = true
		}
	}
	if !warned {
		t.Error("distribution restriction should be reported as a warning")
	}
}

func TestFetcher_TransientFailures(t *testing.T) {
	entry := model.ManifestEntry{ProjectID: 1, FileID: 10}

	tests := []struct {
		name  string
		setup func(*fakeCatalog, *fakeDownloader)
	}{
		{
			name: "project lookup fails",
			setup: func(c *fakeCatalog, d *fakeDownloader) {
				c.add(entry, "mod", true, 1)
				c.failFirst[1] = 1
			},
		},
		{
			name: "file lookup fails",
			setup: func(c *fakeCatalog, d *fakeDownloader) {
				c.projects[1] = model.ProjectInfo{WebsiteURL: "https://www.curseforge.com/minecraft/mc-mods/mod", AllowModDistribution: true}
			},
		},
		{
			name: "download not ok",
			setup: func(c *fakeCatalog, d *fakeDownloader) {
				c.add(entry, "mod", true, 1)
				d.status["https://edge.example.com/mod.jar"] = http.StatusForbidden
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := newFakeCatalog()
			downloader := newFakeDownloader()
			tt.setup(catalog, downloader)

			outcome, err := NewFetcher(catalog, downloader, t.TempDir(), nil).Fetch(context.Background(), entry)
			if err != nil {
				t.Fatalf("Fetch() error = %v, want a transient outcome", err)
			}
			failure, ok := outcome.(model.TransientFailure)
			if !ok {
				t.Fatalf("Fetch() = %#v, want TransientFailure", outcome)
			}
			if failure.Entry != entry {
				t.Errorf("Entry = %v, want %v", failure.Entry, entry)
			}
		})
	}
}

func TestFetcher_FatalErrors(t *testing.T) {
	entry := model.ManifestEntry{ProjectID: 1, FileID: 10}

	t.Run("malformed catalog response", func(t *testing.T) {
		catalog := newFakeCatalog()
		catalog.fatal[1] = true

		_, err := NewFetcher(catalog, newFakeDownloader(), t.TempDir(), nil).Fetch(context.Background(), entry)
		if !curseforge.IsFatal(err) {
			t.Errorf("Fetch() error = %v, want a fatal decode error", err)
		}
	})

	t.Run("unusable file name", func(t *testing.T) {
		catalog := newFakeCatalog()
		catalog.add(entry, "mod", true, 1)
		catalog.files[entry] = model.FileInfo{FileName: "..", DownloadURL: "https://edge.example.com/x"}

		if _, err := NewFetcher(catalog, newFakeDownloader(), t.TempDir(), nil).Fetch(context.Background(), entry); err == nil {
			t.Error("expected error for unusable file name")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		catalog := newFakeCatalog()
		catalog.failFirst[1] = 1
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewFetcher(catalog, newFakeDownloader(), t.TempDir(), nil).Fetch(ctx, entry)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Fetch() error = %v, want context.Canceled", err)
		}
	})
}

func TestFetcher_StripsDirectoryFromFileName(t *testing.T) {
	dir := t.TempDir()
	entry := model.ManifestEntry{ProjectID: 1, FileID: 10}

	catalog := newFakeCatalog()
	catalog.add(entry, "mod", true, 1)
	catalog.files[entry] = model.FileInfo{FileName: "../escape.jar", DownloadURL: "https://edge.example.com/mod.jar", FileLength: 1}

	outcome, err := NewFetcher(catalog, newFakeDownloader(), dir, nil).Fetch(context.Background(), entry)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got := outcome.(model.Success).Path; got != filepath.Join(dir, "escape.jar") {
		t.Errorf("Path = %q, want it inside %q", got, dir)
	}
}
