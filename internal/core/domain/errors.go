package domain

import "errors"

// ============================================================================
// Registry Errors
// ============================================================================

// Not found errors
var (
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrAliasNotFound    = errors.New("artifact alias not found")
	ErrSbomNotFound     = errors.New("sbom not found")
)

// Conflict errors
var (
	ErrTaskExists = errors.New("task with this key already queued")
)

// Validation errors
var (
	ErrUnsupportedCompression = errors.New("unsupported compression format")
	ErrUnknownSbomStrain      = errors.New("unknown sbom strain")
	ErrInvalidTaskKind        = errors.New("invalid task kind")
)

// ============================================================================
// Infrastructure Errors
// ============================================================================

var (
	ErrFetchFailed = errors.New("upstream fetch failed")
	ErrCacheMiss   = errors.New("cache miss")
)
