// Package download provides the orchestration logic for fetching the
// mod files listed in a modpack manifest.
//
// # Fetcher
//
// The Fetcher handles a single manifest entry:
//
//  1. Look up the project
//  2. Derive the category from the project website URL
//  3. Look up the file
//  4. Report distribution-restricted files for manual download
//  5. Skip files already present with the expected size
//  6. Download the file
//
// # Manager
//
// The Manager runs the Fetcher over every entry in rounds. Entries that
// fail transiently are collected and retried after a cooldown until none
// are left:
//
//	manager := download.NewManager(settings, "mods", logger, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	result, err := manager.Run(ctx, entries)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, md := range result.ManualDownloads {
//	    fmt.Println("download manually:", md.URL)
//	}
//
// # Concurrency
//
// Each round fetches up to settings.MaxConcurrentDownloads entries in
// parallel. All workers share one HTTP client and one rate limiter, and
// the limiter is what actually bounds catalog traffic.
//
// # Retry Logic
//
// Every catalog or download failure is retried, with a fixed
// settings.RetryCooldown between rounds. There is no limit on rounds
// unless settings.MaxRetryRounds is set; entries still failing after the
// last round are returned in Result.Failed.
package download
