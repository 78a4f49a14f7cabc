// Package assembler turns the retained frame sequence into a single PDF,
// one image per page, in the given order.
package assembler

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrNoPages signals that there were no retained frames to assemble.
var ErrNoPages = errors.New("no frames to assemble")

// WritePDF writes one PDF at outFile containing each image as one page in
// slice order. Page dimensions follow each image, so orientation and aspect
// ratio are preserved. A failed write is fatal; no partial file is left
// behind claiming success.
func WritePDF(imagePaths []string, outFile string) error {
	if len(imagePaths) == 0 {
		return ErrNoPages
	}

	// pdfcpu appends to an existing output file; each run starts clean.
	os.Remove(outFile)

	if err := api.ImportImagesFile(imagePaths, outFile, nil, nil); err != nil {
		// Drop whatever pdfcpu left half-written.
		os.Remove(outFile)
		return fmt.Errorf("pdfcpu import to '%s': %w", outFile, err)
	}

	return nil
}

// PageCount reports the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("pdfcpu page count for '%s': %w", path, err)
	}
	return n, nil
}
