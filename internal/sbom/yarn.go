package sbom

import (
	"bufio"
	"strings"
)

// parseYarnLock reads the yarn v1 lockfile format. Entries start with an
// unindented comma-separated descriptor list ending in a colon; the pinned
// version and the integrity hash follow on indented lines.
func parseYarnLock(data string) ([]Package, error) {
	var pkgs []Package
	var name string
	last := -1

	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !strings.HasPrefix(line, " ") && strings.HasSuffix(line, ":") {
			name = yarnEntryName(strings.TrimSuffix(line, ":"))
			last = -1
			continue
		}

		trimmed := strings.TrimSpace(line)
		if version, ok := strings.CutPrefix(trimmed, `version "`); ok && name != "" {
			version = strings.TrimSuffix(version, `"`)
			pkgs = append(pkgs, Package{Name: name, Version: version})
			last = len(pkgs) - 1
			name = ""
			continue
		}
		if integrity, ok := strings.CutPrefix(trimmed, "integrity "); ok && last >= 0 {
			pkgs[last].Checksum = integrity
		}
	}
	return pkgs, scanner.Err()
}

// yarnEntryName takes the first descriptor of an entry header and strips
// its version range. The range separator is the last @, which keeps scoped
// names like @babel/core intact.
func yarnEntryName(header string) string {
	descriptor := header
	if idx := strings.Index(header, ", "); idx >= 0 {
		descriptor = header[:idx]
	}
	descriptor = strings.Trim(descriptor, `"`)

	if idx := strings.LastIndex(descriptor, "@"); idx > 0 {
		return descriptor[:idx]
	}
	return descriptor
}
