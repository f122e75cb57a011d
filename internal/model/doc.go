// Package model defines the core data structures used throughout
// the modfetch application.
//
// # Manifest Entries
//
// ManifestEntry identifies one file of one CurseForge project:
//
//	entry := model.ManifestEntry{ProjectID: 238222, FileID: 4712176}
//	fmt.Println(entry) // "238222/4712176"
//
// # Catalog Metadata
//
// ProjectInfo and FileInfo hold the subset of the catalog responses the
// fetcher needs. They are fetched fresh on every attempt and never cached.
//
// # Outcomes
//
// Every fetch attempt ends in exactly one Outcome:
//
//	switch o := outcome.(type) {
//	case model.Success:
//	    // o.Path was downloaded (or already present)
//	case model.DistributionBlocked:
//	    // o.ManualURL must be opened by the user
//	case model.TransientFailure:
//	    // o.Entry is retried in the next round
//	}
//
// # Categories and Manual URLs
//
// Category extracts the classifier segment ("mc-mods", "texture-packs", ...)
// from a project website URL, and ManualURL builds the legacy download page
// for files whose distribution is restricted.
package model
