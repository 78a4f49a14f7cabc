package fingerprint

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// gradient renders a horizontal luminance ramp; inverted flips its direction.
// The two variants disagree on every difference-hash bit, which makes them a
// reliable "visually distinct" pair for tests.
func gradient(inverted bool) image.Image {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(x * 4)
			if inverted {
				v = uint8(255 - x*4)
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestIdenticalImagesHaveZeroDistance(t *testing.T) {
	for _, alg := range []Algorithm{AlgorithmPerception, AlgorithmAverage, AlgorithmDifference} {
		hasher, err := NewHasher(alg)
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}

		a, err := hasher.Compute(gradient(false))
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}
		b, err := hasher.Compute(gradient(false))
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}

		dist, err := a.Distance(b)
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}
		if dist != 0 {
			t.Errorf("%s: identical images have distance %d, want 0", alg, dist)
		}
	}
}

func TestOpposedGradientsAreFarApart(t *testing.T) {
	hasher, err := NewHasher(AlgorithmDifference)
	if err != nil {
		t.Fatal(err)
	}

	a, err := hasher.Compute(gradient(false))
	if err != nil {
		t.Fatal(err)
	}
	b, err := hasher.Compute(gradient(true))
	if err != nil {
		t.Fatal(err)
	}

	dist, err := a.Distance(b)
	if err != nil {
		t.Fatal(err)
	}
	if dist <= 8 {
		t.Errorf("opposed gradients have distance %d, want well above the default threshold", dist)
	}
}

func TestFromBitsDistance(t *testing.T) {
	a := FromBits(0)
	b := FromBits(0xFF)

	dist, err := a.Distance(b)
	if err != nil {
		t.Fatal(err)
	}
	if dist != 8 {
		t.Errorf("got distance %d, want 8", dist)
	}
}

func TestNewHasherRejectsUnknownAlgorithm(t *testing.T) {
	if _, err := NewHasher("md5"); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
}

func TestNewHasherDefaultsToPerception(t *testing.T) {
	hasher, err := NewHasher("")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := hasher.Compute(gradient(false)); err != nil {
		t.Fatal(err)
	}
}

func TestHashFile(t *testing.T) {
	hasher, err := NewHasher(AlgorithmPerception)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "1.png")
	writePNG(t, path, gradient(false))

	fromFile, err := HashFile(hasher, path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}

	direct, err := hasher.Compute(gradient(false))
	if err != nil {
		t.Fatal(err)
	}

	dist, err := fromFile.Distance(direct)
	if err != nil {
		t.Fatal(err)
	}
	if dist != 0 {
		t.Errorf("file and in-memory hashes differ by %d bits", dist)
	}
}

func TestHashFileCorruptImage(t *testing.T) {
	hasher, err := NewHasher(AlgorithmPerception)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "2.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := HashFile(hasher, path); err == nil {
		t.Fatal("expected decode error for corrupt image")
	}
}

func TestHashFileMissingImage(t *testing.T) {
	hasher, err := NewHasher(AlgorithmPerception)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := HashFile(hasher, filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
