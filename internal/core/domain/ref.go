package domain

// Ref is a provenance claim: a vendor shipped this checksum as
// package/version. Refs may point at checksums that were never imported,
// e.g. artifacts whose import is skipped for size.
type Ref struct {
	Chksum   string `json:"chksum"`
	Vendor   string `json:"vendor"`
	Package  string `json:"package"`
	Version  string `json:"version"`
	Filename string `json:"filename,omitempty"`
}
