// Package sbom recognizes dependency lockfiles inside source archives and
// extracts the package lists they pin.
package sbom

import (
	"fmt"
	"path"

	"source-registry-service/internal/core/domain"
)

// Lockfile strains. The strain names what dialect the raw sbom data is in.
const (
	StrainCargo          = "cargo"
	StrainNpmPackageLock = "npm-package-lock"
	StrainGoSum          = "go-sum"
	StrainYarn           = "yarn"
	StrainPnpm           = "pnpm"
)

var strainByFilename = map[string]string{
	"Cargo.lock":        StrainCargo,
	"package-lock.json": StrainNpmPackageLock,
	"go.sum":            StrainGoSum,
	"yarn.lock":         StrainYarn,
	"pnpm-lock.yaml":    StrainPnpm,
}

// Detect maps a lockfile basename to its strain.
func Detect(filename string) (string, bool) {
	strain, ok := strainByFilename[filename]
	return strain, ok
}

// KnownStrain reports whether the strain names a supported dialect.
func KnownStrain(strain string) bool {
	for _, s := range strainByFilename {
		if s == strain {
			return true
		}
	}
	return false
}

// InterestingPath reports whether an archive member path names a lockfile
// worth capturing.
func InterestingPath(p string) bool {
	_, ok := strainByFilename[path.Base(p)]
	return ok
}

// Package is one pinned dependency from a lockfile. Checksum is whatever
// integrity value the dialect records and is empty when it records none.
type Package struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Checksum string `json:"checksum,omitempty"`
}

// Packages extracts the pinned package list from raw lockfile data.
func Packages(strain, data string) ([]Package, error) {
	switch strain {
	case StrainCargo:
		return parseCargoLock(data)
	case StrainNpmPackageLock:
		return parsePackageLock(data)
	case StrainGoSum:
		return parseGoSum(data)
	case StrainYarn:
		return parseYarnLock(data)
	case StrainPnpm:
		return parsePnpmLock(data)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSbomStrain, strain)
	}
}
