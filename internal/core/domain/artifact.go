package domain

import (
	"time"
)

// Artifact is an imported source archive, keyed by the checksum of its
// uncompressed tar stream. Files holds the archive listing in import order.
type Artifact struct {
	Chksum       string      `json:"chksum"`
	FirstSeen    time.Time   `json:"first_seen"`
	LastImported time.Time   `json:"last_imported"`
	Files        []FileEntry `json:"files"`
}

// FileEntry is one member of an archive listing. Directories keep their
// trailing slash. Digest is empty for anything that has no content of its
// own (directories, links, special files).
type FileEntry struct {
	Digest  string      `json:"digest,omitempty"`
	Path    string      `json:"path"`
	LinksTo *LinkTarget `json:"links_to,omitempty"`
}

// LinkTarget records where a symlink or hardlink entry points. Exactly one
// field is set.
type LinkTarget struct {
	Symbolic string `json:"symbolic,omitempty"`
	Hard     string `json:"hard,omitempty"`
}

// Alias maps the checksum of a compressed file to the checksum of the tar
// stream inside it, so artifacts can be looked up by either.
type Alias struct {
	From string `json:"alias_from"`
	To   string `json:"alias_to"`
}
