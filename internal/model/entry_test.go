package model

import (
	"errors"
	"testing"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.curseforge.com/minecraft/mc-mods/foo", "mc-mods"},
		{"https://www.curseforge.com/minecraft/texture-packs/bar", "texture-packs"},
		{"https://www.curseforge.com/minecraft/shaders/baz/", "shaders"},
		{"https://www.curseforge.com/minecraft", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := Category(tt.url); got != tt.want {
				t.Errorf("Category(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestManualURL(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		fileID int
		want   string
	}{
		{
			name:   "primary host rewritten",
			url:    "https://www.curseforge.com/minecraft/mc-mods/foo",
			fileID: 42,
			want:   "https://legacy.curseforge.com/minecraft/mc-mods/foo/download/42",
		},
		{
			name:   "other host untouched",
			url:    "https://example.com/minecraft/mc-mods/foo",
			fileID: 7,
			want:   "https://example.com/minecraft/mc-mods/foo/download/7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ManualURL(tt.url, tt.fileID); got != tt.want {
				t.Errorf("ManualURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestManifestEntry_String(t *testing.T) {
	e := ManifestEntry{ProjectID: 1, FileID: 10}
	if got := e.String(); got != "1/10" {
		t.Errorf("String() = %q, want %q", got, "1/10")
	}
}

func TestTransientFailure_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	f := TransientFailure{Entry: ManifestEntry{ProjectID: 1, FileID: 2}, Err: cause}

	if !errors.Is(f, cause) {
		t.Error("TransientFailure should unwrap to its cause")
	}
	if f.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", f.Error(), "boom")
	}
	if (TransientFailure{}).Error() != "fetch failed" {
		t.Error("TransientFailure without cause should report a generic message")
	}
}

func TestResult_Complete(t *testing.T) {
	r := &Result{Jars: []Jar{{Path: "a.jar", Category: "mc-mods"}}}
	if !r.Complete() {
		t.Error("Complete() should be true with no manual downloads or failures")
	}

	r.ManualDownloads = append(r.ManualDownloads, ManualDownload{URL: "https://example.com"})
	if r.Complete() {
		t.Error("Complete() should be false with pending manual downloads")
	}
}
