// Package ioutils provides file system utilities for modfetch.
//
// This package contains functions for:
//   - File writing
//   - Filename sanitization, including names received from the catalog
//   - The size check used to skip files that are already downloaded
//   - Directory creation
//
// # Filename Sanitization
//
// Use SafeFileName for names that come from a remote service:
//
//	name := ioutils.SafeFileName("../../jei.jar") // Returns "jei.jar"
//
// # Existing Files
//
//	if ioutils.SizeMatches(path, file.FileLength) {
//	    // already downloaded
//	}
package ioutils
