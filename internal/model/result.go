package model

// Jar is a file that ends up in the mods directory, together with its
// category. Distribution-blocked files are listed too, so that later
// packaging steps still reference the file the user will download.
type Jar struct {
	Path     string `json:"path"`
	Category string `json:"category"`
}

// ManualDownload pairs the URL a user has to open with the outcome that
// produced it.
type ManualDownload struct {
	URL     string              `json:"url"`
	Outcome DistributionBlocked `json:"-"`
}

// Result is the final partition produced by a batch fetch.
//
// Jars and ManualDownloads are in completion order, not manifest order.
// Failed lists entries that were still failing when the retry rounds were
// exhausted; it is always empty when retries are unbounded.
type Result struct {
	Jars            []Jar            `json:"jars"`
	ManualDownloads []ManualDownload `json:"manual_downloads"`
	Failed          []ManifestEntry  `json:"failed,omitempty"`
	Rounds          int              `json:"rounds"`
}

// Complete reports whether every entry was fetched without user action.
func (r *Result) Complete() bool {
	return len(r.ManualDownloads) == 0 && len(r.Failed) == 0
}
