package sbom

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

type packageLock struct {
	Packages map[string]struct {
		Version   string `json:"version"`
		Integrity string `json:"integrity"`
	} `json:"packages"`
}

// parsePackageLock reads package-lock.json in its v2/v3 shape, where the
// packages map is keyed by install path and the empty key is the project
// itself.
func parsePackageLock(data string) ([]Package, error) {
	var lock packageLock
	if err := json.Unmarshal([]byte(data), &lock); err != nil {
		return nil, fmt.Errorf("parse package-lock.json: %w", err)
	}

	var pkgs []Package
	for path, p := range lock.Packages {
		if path == "" {
			continue
		}
		pkgs = append(pkgs, Package{Name: npmName(path), Version: p.Version, Checksum: p.Integrity})
	}
	sort.Slice(pkgs, func(i, j int) bool {
		if pkgs[i].Name != pkgs[j].Name {
			return pkgs[i].Name < pkgs[j].Name
		}
		return pkgs[i].Version < pkgs[j].Version
	})
	return pkgs, nil
}

// npmName strips the node_modules prefix from an install path, keeping only
// the innermost package name. Nested paths like
// node_modules/a/node_modules/@scope/b resolve to @scope/b.
func npmName(path string) string {
	const marker = "node_modules/"
	if idx := strings.LastIndex(path, marker); idx >= 0 {
		return path[idx+len(marker):]
	}
	return path
}
