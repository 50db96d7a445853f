package archive

import (
	"archive/tar"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"source-registry-service/internal/core/domain"
)

// CapturedFile is an archive member retained in memory during a walk,
// typically a lockfile worth registering as an sbom.
type CapturedFile struct {
	Path   string
	Digest string
	Data   []byte
}

// WalkOptions tunes a tar walk.
type WalkOptions struct {
	Compression Compression
	// Capture selects member paths whose content should be retained.
	Capture func(path string) bool
	// CaptureLimit bounds the size of a retained member. Larger members
	// are still hashed but their content is dropped.
	CaptureLimit int64
}

// WalkResult describes one fully consumed archive stream.
type WalkResult struct {
	// Outer are the digests of the stream as transmitted, compression
	// included. Inner covers the decompressed tar; for uncompressed
	// input the two are equal.
	Outer    Digests
	Inner    Digests
	Files    []domain.FileEntry
	Captured []CapturedFile
}

// Walk consumes a (possibly compressed) tar stream, hashing both layers
// and recording every member. The reader is drained to EOF so the digests
// cover the complete stream, trailing padding included.
func Walk(r io.Reader, opts WalkOptions) (*WalkResult, error) {
	outer := NewHasher()
	raw := io.TeeReader(r, outer)

	dec, err := NewReader(raw, opts.Compression)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	inner := NewHasher()
	teed := io.TeeReader(dec, inner)
	tr := tar.NewReader(teed)

	res := &WalkResult{}
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar entry: %w", err)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			res.Files = append(res.Files, domain.FileEntry{Path: hdr.Name})
		case tar.TypeSymlink:
			res.Files = append(res.Files, domain.FileEntry{
				Path:    hdr.Name,
				LinksTo: &domain.LinkTarget{Symbolic: hdr.Linkname},
			})
		case tar.TypeLink:
			res.Files = append(res.Files, domain.FileEntry{
				Path:    hdr.Name,
				LinksTo: &domain.LinkTarget{Hard: hdr.Linkname},
			})
		case tar.TypeReg:
			entry, captured, err := hashMember(tr, hdr.Name, opts)
			if err != nil {
				return nil, err
			}
			res.Files = append(res.Files, entry)
			if captured != nil {
				res.Captured = append(res.Captured, *captured)
			}
		default:
			// fifos, devices and friends carry no content worth recording
		}
	}

	// the tar reader stops at the end-of-archive marker; pull the rest
	// through both hashers
	if _, err := io.Copy(io.Discard, teed); err != nil {
		return nil, fmt.Errorf("drain archive: %w", err)
	}
	if err := dec.Close(); err != nil {
		return nil, fmt.Errorf("close decoder: %w", err)
	}
	if _, err := io.Copy(io.Discard, raw); err != nil {
		return nil, fmt.Errorf("drain stream: %w", err)
	}

	res.Outer = outer.Digests()
	res.Inner = inner.Digests()
	return res, nil
}

func hashMember(r io.Reader, path string, opts WalkOptions) (domain.FileEntry, *CapturedFile, error) {
	sum := sha256.New()

	var buf bytes.Buffer
	capture := opts.Capture != nil && opts.CaptureLimit > 0 && opts.Capture(path)
	if capture {
		n, err := io.CopyN(io.MultiWriter(sum, &buf), r, opts.CaptureLimit+1)
		if err != nil && !errors.Is(err, io.EOF) {
			return domain.FileEntry{}, nil, fmt.Errorf("read member %q: %w", path, err)
		}
		if n > opts.CaptureLimit {
			capture = false
			buf.Reset()
		}
	}
	if _, err := io.Copy(sum, r); err != nil {
		return domain.FileEntry{}, nil, fmt.Errorf("read member %q: %w", path, err)
	}

	digest := "sha256:" + hex.EncodeToString(sum.Sum(nil))
	entry := domain.FileEntry{Digest: digest, Path: path}
	if !capture {
		return entry, nil, nil
	}
	return entry, &CapturedFile{Path: path, Digest: digest, Data: buf.Bytes()}, nil
}
