// Package http provides the HTTP client shared by the catalog client and
// the file downloader.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Connection reuse across API lookups and downloads
//   - Per-request timeouts
//   - File downloads with progress tracking
//
// # Basic Usage
//
//	client := http.NewClient("modfetch", time.Minute, 10*time.Minute)
//
//	// Fetch a document; non-2xx is reported through StatusCode
//	resp, err := client.Get(ctx, url, header)
//
//	// Download file with progress callback
//	status, err := client.DownloadFile(ctx, jarURL, "/mods/file.jar", func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
