package archive

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"source-registry-service/internal/core/domain"
)

// Compression identifies the outer encoding of an archive stream.
type Compression string

const (
	CompressionNone  Compression = "none"
	CompressionGzip  Compression = "gz"
	CompressionXz    Compression = "xz"
	CompressionBzip2 Compression = "bz2"
	CompressionZstd  Compression = "zst"
	// CompressionAuto sniffs the stream's magic bytes.
	CompressionAuto Compression = "auto"
)

// ParseCompression maps a user-supplied name to a Compression.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return CompressionAuto, nil
	case "none", "tar":
		return CompressionNone, nil
	case "gz", "gzip":
		return CompressionGzip, nil
	case "xz":
		return CompressionXz, nil
	case "bz2", "bzip2":
		return CompressionBzip2, nil
	case "zst", "zstd":
		return CompressionZstd, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedCompression, s)
	}
}

// CompressionForFilename guesses the compression from an archive filename.
// The second return is false when the name does not look like a source
// archive at all.
func CompressionForFilename(name string) (Compression, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"),
		strings.HasSuffix(lower, ".tgz"),
		strings.HasSuffix(lower, ".crate"):
		return CompressionGzip, true
	case strings.HasSuffix(lower, ".tar.xz"):
		return CompressionXz, true
	case strings.HasSuffix(lower, ".tar.bz2"):
		return CompressionBzip2, true
	case strings.HasSuffix(lower, ".tar.zst"):
		return CompressionZstd, true
	case strings.HasSuffix(lower, ".tar"):
		return CompressionNone, true
	default:
		return "", false
	}
}

var (
	magicGzip  = []byte{0x1f, 0x8b}
	magicXz    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
	magicBzip2 = []byte{0x42, 0x5a, 0x68}
	magicZstd  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Detect sniffs the first bytes of the stream. Unknown magic is treated as
// an uncompressed tar; the tar reader will reject garbage soon enough.
func Detect(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, magicGzip):
		return CompressionGzip
	case bytes.HasPrefix(head, magicXz):
		return CompressionXz
	case bytes.HasPrefix(head, magicBzip2):
		return CompressionBzip2
	case bytes.HasPrefix(head, magicZstd):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

// NewReader wraps r with the decoder for the given compression. The caller
// must Close the result. CompressionAuto peeks at the stream first.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	if c == CompressionAuto {
		br := bufio.NewReader(r)
		head, err := br.Peek(len(magicXz))
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("sniff compression: %w", err)
		}
		return NewReader(br, Detect(head))
	}
	switch c {
	case CompressionNone:
		return nopCloser{r}, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return zr, nil
	case CompressionXz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open xz stream: %w", err)
		}
		return nopCloser{xr}, nil
	case CompressionBzip2:
		return nopCloser{bzip2.NewReader(r)}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedCompression, string(c))
	}
}
