package model

// Outcome is the result of a single fetch attempt.
//
// The set of implementations is closed: Success, DistributionBlocked and
// TransientFailure. Use a type switch to handle them.
type Outcome interface {
	outcome()
}

// Success means the file is present at Path, either freshly downloaded or
// found on disk with the expected size.
type Success struct {
	Path     string
	Category string
}

// DistributionBlocked means the file exists upstream but the catalog does
// not allow it to be downloaded programmatically. The user has to fetch
// ManualURL by hand and save it as Path.
type DistributionBlocked struct {
	Entry     ManifestEntry
	ManualURL string
	Path      string
	Category  string
}

// TransientFailure means a catalog call or the download failed. The entry
// is eligible for another round.
type TransientFailure struct {
	Entry ManifestEntry
	Err   error
}

func (Success) outcome()             {}
func (DistributionBlocked) outcome() {}
func (TransientFailure) outcome()    {}

// Error returns the failure cause, or a generic message if none was recorded.
func (f TransientFailure) Error() string {
	if f.Err == nil {
		return "fetch failed"
	}
	return f.Err.Error()
}

// Unwrap returns the failure cause.
func (f TransientFailure) Unwrap() error {
	return f.Err
}
