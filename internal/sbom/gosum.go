package sbom

import (
	"bufio"
	"strings"
)

// parseGoSum reads go.sum lines of the form "module version hash". Every
// module shows up a second time with a /go.mod version suffix; only the
// module line itself is kept.
func parseGoSum(data string) ([]Package, error) {
	var pkgs []Package
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		version := fields[1]
		if strings.HasSuffix(version, "/go.mod") {
			continue
		}
		pkg := Package{Name: fields[0], Version: version}
		if len(fields) >= 3 {
			pkg.Checksum = fields[2]
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, scanner.Err()
}
