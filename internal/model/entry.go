package model

import (
	"fmt"
	"strings"
)

// ManifestEntry identifies a single file of a CurseForge project.
//
// Entries are immutable and come from the modpack manifest. Two entries
// are the same entry when both ProjectID and FileID match.
type ManifestEntry struct {
	// ProjectID is the catalog identifier of the mod project.
	ProjectID int

	// FileID is the catalog identifier of the uploaded file version.
	FileID int
}

// String renders the entry as "project/file".
func (e ManifestEntry) String() string {
	return fmt.Sprintf("%d/%d", e.ProjectID, e.FileID)
}

// ProjectInfo is the part of a project lookup the fetcher relies on.
type ProjectInfo struct {
	// Name is the display name, used only for diagnostics.
	Name string

	// WebsiteURL is the project page, e.g.
	// "https://www.curseforge.com/minecraft/mc-mods/jei".
	WebsiteURL string

	// AllowModDistribution is false when the author forbids third-party
	// downloads through the API.
	AllowModDistribution bool
}

// FileInfo is the part of a file lookup the fetcher relies on.
type FileInfo struct {
	FileName    string
	DownloadURL string
	FileLength  int64
}

const (
	primaryHost = "www.curseforge.com"
	legacyHost  = "legacy.curseforge.com"
)

// Category returns the classifier segment of a project website URL.
//
// The catalog lays out website URLs as
// "https://www.curseforge.com/<game>/<class>/<slug>", so the class is the
// fifth "/"-separated segment. The value is passed through literally.
// An empty string is returned when the URL is too short.
//
// Example:
//
//	Category("https://www.curseforge.com/minecraft/texture-packs/bar") // "texture-packs"
func Category(websiteURL string) string {
	parts := strings.Split(websiteURL, "/")
	if len(parts) < 5 {
		return ""
	}
	return parts[4]
}

// ManualURL builds the page a user has to visit to download a file whose
// distribution through the API is restricted.
//
// The primary web host does not serve direct downloads for such files,
// so the host is rewritten to the legacy subdomain.
//
// Example:
//
//	ManualURL("https://www.curseforge.com/minecraft/mc-mods/foo", 42)
//	// "https://legacy.curseforge.com/minecraft/mc-mods/foo/download/42"
func ManualURL(websiteURL string, fileID int) string {
	u := fmt.Sprintf("%s/download/%d", websiteURL, fileID)
	return strings.Replace(u, primaryHost, legacyHost, 1)
}
