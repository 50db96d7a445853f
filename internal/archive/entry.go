package archive

import (
	"fmt"
	"sort"
	"strings"

	"source-registry-service/internal/core/domain"
)

// RenderListing formats file entries the way the artifact pages show them:
// a fixed-width digest column, two spaces, then the path. Link entries get
// their target appended.
func RenderListing(files []domain.FileEntry) string {
	var sb strings.Builder
	for _, f := range files {
		fmt.Fprintf(&sb, "%-71s  %s", f.Digest, f.Path)
		if f.LinksTo != nil {
			if f.LinksTo.Symbolic != "" {
				sb.WriteString(" -> ")
				sb.WriteString(f.LinksTo.Symbolic)
			} else if f.LinksTo.Hard != "" {
				sb.WriteString(" link to ")
				sb.WriteString(f.LinksTo.Hard)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SortEntries orders entries by path so listings of archives with different
// member order still line up for diffing.
func SortEntries(files []domain.FileEntry) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
}

// TrimLeadingComponent drops everything up to and including the first slash
// of each path. Archives conventionally nest under a name-version/ directory
// and trimming it makes listings of different versions comparable.
func TrimLeadingComponent(files []domain.FileEntry) {
	for i := range files {
		if _, rest, ok := strings.Cut(files[i].Path, "/"); ok {
			files[i].Path = rest
		}
	}
}
