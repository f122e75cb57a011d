// Package curseforge provides a client for the CurseForge catalog API.
//
// Only the two lookups needed to download a manifest entry are
// implemented:
//
//	GET /mods/{modId}                 project metadata
//	GET /mods/{modId}/files/{fileId}  file metadata
//
// # Basic Usage
//
//	limiter := ratelimit.New(5, time.Second)
//	client := curseforge.NewClient(httpClient, limiter, curseforge.DefaultBaseURL, apiKey, logger)
//
//	project, err := client.GetMod(ctx, 238222)
//	file, err := client.GetModFile(ctx, 238222, 4712176)
//
// # Errors
//
// Transport failures and non-2xx responses return *APIError and are safe
// to retry. A 2xx response that does not decode returns *DecodeError;
// IsFatal reports it so callers can stop instead of retrying forever.
package curseforge
