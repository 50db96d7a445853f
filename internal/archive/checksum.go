// Package archive streams source archives: multi-digest hashing,
// transparent decompression, tar walking and listing rendering. It never
// touches storage; persisting what it finds is the caller's business.
package archive

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
)

// Digests holds the content digests computed over one byte stream. SHA256
// is the canonical one; everything in the registry is keyed by it.
type Digests struct {
	SHA256  string `json:"sha256"`
	SHA512  string `json:"sha512"`
	BLAKE2b string `json:"blake2b"`
}

// Hasher computes all registry digests over everything written to it.
type Hasher struct {
	sha256 hash.Hash
	sha512 hash.Hash
	blake  hash.Hash
	n      int64
}

func NewHasher() *Hasher {
	// blake2b only errors when keyed
	blake, _ := blake2b.New256(nil)
	return &Hasher{
		sha256: sha256.New(),
		sha512: sha512.New(),
		blake:  blake,
	}
}

func (h *Hasher) Write(p []byte) (int, error) {
	h.sha256.Write(p)
	h.sha512.Write(p)
	h.blake.Write(p)
	h.n += int64(len(p))
	return len(p), nil
}

// Digests returns the digests of everything written so far.
func (h *Hasher) Digests() Digests {
	return Digests{
		SHA256:  "sha256:" + hex.EncodeToString(h.sha256.Sum(nil)),
		SHA512:  "sha512:" + hex.EncodeToString(h.sha512.Sum(nil)),
		BLAKE2b: "blake2b:" + hex.EncodeToString(h.blake.Sum(nil)),
	}
}

// Bytes returns how many bytes have been written.
func (h *Hasher) Bytes() int64 {
	return h.n
}

// HashReader consumes r to EOF and returns its digests.
func HashReader(r io.Reader) (Digests, error) {
	h := NewHasher()
	if _, err := io.Copy(h, r); err != nil {
		return Digests{}, fmt.Errorf("hash stream: %w", err)
	}
	return h.Digests(), nil
}

// SHA256Hex returns the canonical checksum string for a blob.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:])
}
