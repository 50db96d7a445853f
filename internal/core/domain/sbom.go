package domain

// Sbom is a raw dependency lockfile captured from inside an archive or
// registered directly. Strain names the lockfile dialect.
type Sbom struct {
	Chksum string `json:"chksum"`
	Strain string `json:"strain"`
	Data   string `json:"data"`
}

// SbomRef links an archive to a lockfile found inside it at Path.
type SbomRef struct {
	ArchiveChksum string `json:"from_archive"`
	SbomStrain    string `json:"sbom_strain"`
	SbomChksum    string `json:"sbom_chksum"`
	Path          string `json:"path"`
}
