package sbom

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type pnpmLock struct {
	Packages map[string]struct {
		Resolution struct {
			Integrity string `yaml:"integrity"`
		} `yaml:"resolution"`
	} `yaml:"packages"`
}

// parsePnpmLock reads pnpm-lock.yaml. The packages map is keyed by
// "name@version" (v6 and later, with an optional leading slash) or
// "name/version" (v5); peer dependency suffixes in parentheses are noise.
func parsePnpmLock(data string) ([]Package, error) {
	var lock pnpmLock
	if err := yaml.Unmarshal([]byte(data), &lock); err != nil {
		return nil, fmt.Errorf("parse pnpm-lock.yaml: %w", err)
	}

	var pkgs []Package
	for key, entry := range lock.Packages {
		name, version, ok := splitPnpmKey(key)
		if !ok {
			continue
		}
		pkgs = append(pkgs, Package{Name: name, Version: version, Checksum: entry.Resolution.Integrity})
	}
	sort.Slice(pkgs, func(i, j int) bool {
		if pkgs[i].Name != pkgs[j].Name {
			return pkgs[i].Name < pkgs[j].Name
		}
		return pkgs[i].Version < pkgs[j].Version
	})
	return pkgs, nil
}

func splitPnpmKey(key string) (name, version string, ok bool) {
	key = strings.TrimPrefix(key, "/")
	if idx := strings.Index(key, "("); idx >= 0 {
		key = key[:idx]
	}

	// the last @ separates name and version except when it only marks a
	// scope at position zero
	if idx := strings.LastIndex(key, "@"); idx > 0 {
		return key[:idx], key[idx+1:], true
	}
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		return key[:idx], key[idx+1:], true
	}
	return "", "", false
}
