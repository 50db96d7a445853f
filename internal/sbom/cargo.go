package sbom

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

type cargoLock struct {
	Package []struct {
		Name     string `toml:"name"`
		Version  string `toml:"version"`
		Checksum string `toml:"checksum"`
	} `toml:"package"`
}

// parseCargoLock reads Cargo.lock. Workspace-local packages carry no
// checksum, registry packages do.
func parseCargoLock(data string) ([]Package, error) {
	var lock cargoLock
	if err := toml.Unmarshal([]byte(data), &lock); err != nil {
		return nil, fmt.Errorf("parse Cargo.lock: %w", err)
	}

	pkgs := make([]Package, 0, len(lock.Package))
	for _, p := range lock.Package {
		pkgs = append(pkgs, Package{Name: p.Name, Version: p.Version, Checksum: p.Checksum})
	}
	return pkgs, nil
}
