// Package fingerprint computes perceptual hashes for slide frames and
// measures their similarity as a Hamming distance. The hash algorithm is
// swappable so the dedup engine never depends on a specific variant.
package fingerprint

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/corona10/goimagehash"
)

// Algorithm selects the perceptual hash variant.
type Algorithm string

const (
	AlgorithmPerception Algorithm = "perception" // DCT-based pHash (default).
	AlgorithmAverage    Algorithm = "average"    // Mean-luminance aHash.
	AlgorithmDifference Algorithm = "difference" // Gradient dHash.
)

// Hash is a fixed-length perceptual fingerprint of one frame.
type Hash struct {
	h *goimagehash.ImageHash
}

// Distance returns the Hamming distance to other.
func (h *Hash) Distance(other *Hash) (int, error) {
	return h.h.Distance(other.h)
}

// String renders the hash in goimagehash's kind:hex form, for logs and tests.
func (h *Hash) String() string {
	return h.h.ToString()
}

// FromBits builds a Hash from a raw 64-bit vector.
func FromBits(bits uint64) *Hash {
	return &Hash{h: goimagehash.NewImageHash(bits, goimagehash.Unknown)}
}

// Hasher computes a fingerprint from decoded image content.
type Hasher interface {
	Compute(img image.Image) (*Hash, error)
}

type hasher struct {
	fn func(image.Image) (*goimagehash.ImageHash, error)
}

func (hs *hasher) Compute(img image.Image) (*Hash, error) {
	h, err := hs.fn(img)
	if err != nil {
		return nil, err
	}
	return &Hash{h: h}, nil
}

// NewHasher returns a Hasher for the given algorithm.
func NewHasher(a Algorithm) (Hasher, error) {
	switch a {
	case AlgorithmPerception, "":
		return &hasher{fn: goimagehash.PerceptionHash}, nil
	case AlgorithmAverage:
		return &hasher{fn: goimagehash.AverageHash}, nil
	case AlgorithmDifference:
		return &hasher{fn: goimagehash.DifferenceHash}, nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm '%s'", a)
	}
}

// HashFile decodes the image at path and computes its fingerprint.
// Image bytes are not retained past the call.
func HashFile(hs Hasher, path string) (*Hash, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame '%s': %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame '%s': %w", path, err)
	}

	return hs.Compute(img)
}
