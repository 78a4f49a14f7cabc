// Package ingest collects candidate slide frames from a folder and orders
// them the way capture tools number them: 2.jpg before 10.jpg.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bdougie/slidedup/internal/models"
)

// ErrNoFrames signals a readable folder with no qualifying images.
// Callers may treat this as a no-op rather than a failure.
var ErrNoFrames = errors.New("no frames found")

// Supported frame extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ListFrames returns the image files in dir as Frames in natural order,
// with Index set to each frame's position in that order.
func ListFrames(dir string) ([]models.Frame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read frames directory '%s': %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w in directory '%s'", ErrNoFrames, dir)
	}

	sort.Slice(names, func(i, j int) bool {
		return NaturalLess(names[i], names[j])
	})

	frames := make([]models.Frame, len(names))
	for i, name := range names {
		frames[i] = models.Frame{Path: filepath.Join(dir, name), Index: i}
	}
	return frames, nil
}

// NaturalLess compares two strings treating each run of digits as a single
// integer, so "2.jpg" sorts before "10.jpg". Text runs compare bytewise.
func NaturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			na, resta := takeDigits(a)
			nb, restb := takeDigits(b)
			if na != nb {
				return numLess(na, nb)
			}
			a, b = resta, restb
			continue
		}
		ta, resta := takeText(a)
		tb, restb := takeText(b)
		if ta != tb {
			return ta < tb
		}
		a, b = resta, restb
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func takeDigits(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func takeText(s string) (string, string) {
	i := 0
	for i < len(s) && !isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// numLess compares two digit runs by numeric value without overflowing:
// strip leading zeros, shorter run is smaller, equal lengths compare bytewise.
func numLess(a, b string) bool {
	sa := strings.TrimLeft(a, "0")
	sb := strings.TrimLeft(b, "0")
	if len(sa) != len(sb) {
		return len(sa) < len(sb)
	}
	if sa != sb {
		return sa < sb
	}
	// Same value; fewer leading zeros sorts first for a stable total order.
	return len(a) < len(b)
}
