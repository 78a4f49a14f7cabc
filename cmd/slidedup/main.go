package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"log/slog"

	"github.com/lmittmann/tint"

	"github.com/bdougie/slidedup/internal/assembler"
	"github.com/bdougie/slidedup/internal/dedup"
	"github.com/bdougie/slidedup/internal/extractor"
	"github.com/bdougie/slidedup/internal/fingerprint"
	"github.com/bdougie/slidedup/internal/ingest"
	"github.com/bdougie/slidedup/internal/models"
	"github.com/bdougie/slidedup/internal/storage"
)

const defaultOutput = "cleaned_lecture.pdf"

func usage() {
	fmt.Println("Usage: slidedup --input frames_dir [--output cleaned_lecture.pdf]")
	fmt.Println("                [--threshold 8] [--hash perception|average|difference]")
	fmt.Println("                [--workers 4] [--video lecture.mp4] [--interval 5] [--no-report]")
}

func main() {
	// Cancel between frames on Ctrl-C.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Configure logger
	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		}),
	)

	// Parse command line arguments
	inputDir := ""
	outputFile := defaultOutput
	videoPath := ""
	hashAlg := string(fingerprint.AlgorithmPerception)
	threshold := dedup.DefaultThreshold
	workers := 0
	interval := 5
	writeReport := true

	for i := 1; i < len(os.Args); i++ {
		switch os.Args[i] {
		case "--input":
			if i+1 < len(os.Args) {
				inputDir = os.Args[i+1]
				i++
			}
		case "--output":
			if i+1 < len(os.Args) {
				outputFile = os.Args[i+1]
				i++
			}
		case "--video":
			if i+1 < len(os.Args) {
				videoPath = os.Args[i+1]
				i++
			}
		case "--hash":
			if i+1 < len(os.Args) {
				hashAlg = os.Args[i+1]
				i++
			}
		case "--threshold":
			if i+1 < len(os.Args) {
				n, err := strconv.Atoi(os.Args[i+1])
				if err != nil || n < 0 {
					fmt.Printf("Invalid --threshold value: %s\n", os.Args[i+1])
					os.Exit(1)
				}
				threshold = n
				i++
			}
		case "--workers":
			if i+1 < len(os.Args) {
				n, err := strconv.Atoi(os.Args[i+1])
				if err != nil || n < 1 {
					fmt.Printf("Invalid --workers value: %s\n", os.Args[i+1])
					os.Exit(1)
				}
				workers = n
				i++
			}
		case "--interval":
			if i+1 < len(os.Args) {
				n, err := strconv.Atoi(os.Args[i+1])
				if err != nil || n < 1 {
					fmt.Printf("Invalid --interval value: %s\n", os.Args[i+1])
					os.Exit(1)
				}
				interval = n
				i++
			}
		case "--no-report":
			writeReport = false
		case "--help", "-h":
			usage()
			return
		default:
			fmt.Printf("Unknown argument: %s\n", os.Args[i])
			usage()
			os.Exit(1)
		}
	}

	// With --video the frames directory may be derived from the video name.
	if inputDir == "" && videoPath != "" {
		videoName := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
		inputDir = videoName + "_frames"
	}

	if inputDir == "" {
		usage()
		os.Exit(1)
	}

	if videoPath != "" {
		if err := extractor.ExtractFrames(videoPath, inputDir, interval, logger); err != nil {
			logger.Error("frame extraction failed", "error", err)
			os.Exit(1)
		}
	}

	// Surface an unwritable output location before any processing starts.
	if err := checkWritable(outputFile); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Ingest frames in natural order.
	frames, err := ingest.ListFrames(inputDir)
	if err != nil {
		if errors.Is(err, ingest.ErrNoFrames) {
			fmt.Printf("No qualifying images found in '%s'. Nothing to do.\n", inputDir)
			return
		}
		logger.Error("ingestion failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Found %d frames in '%s' (natural order)\n", len(frames), inputDir)

	hasher, err := fingerprint.NewHasher(fingerprint.Algorithm(hashAlg))
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Deduplicate.
	engine := dedup.NewEngine(
		func(path string) (*fingerprint.Hash, error) {
			return fingerprint.HashFile(hasher, path)
		},
		dedup.Options{Threshold: threshold, Workers: workers},
		logger,
	)

	fmt.Printf("Deduplicating with %s hash, Hamming threshold %d...\n", hashAlg, threshold)
	result, err := engine.Run(ctx, frames)
	if err != nil {
		logger.Error("deduplication failed", "error", err)
		os.Exit(1)
	}

	report := models.RunReport{
		InputDir:   inputDir,
		OutputFile: outputFile,
		Algorithm:  hashAlg,
		Threshold:  threshold,
		Total:      len(frames),
		Retained:   len(result.Retained),
		Skipped:    len(result.Warnings),
		Warnings:   result.Warnings,
		Status:     result.Status,
	}

	// Assemble the PDF.
	if len(result.Retained) == 0 {
		report.Status = models.StatusEmptyInput
		saveReport(writeReport, report, logger)
		fmt.Println("All frames were skipped; no PDF was written.")
		return
	}

	paths := make([]string, len(result.Retained))
	for i, frame := range result.Retained {
		paths[i] = frame.Path
	}

	if err := assembler.WritePDF(paths, outputFile); err != nil {
		report.Status = models.StatusFailed
		saveReport(writeReport, report, logger)
		logger.Error("PDF assembly failed", "error", err)
		os.Exit(1)
	}

	saveReport(writeReport, report, logger)

	switch report.Status {
	case models.StatusPartial:
		fmt.Printf("Done with warnings: %d of %d frames kept, %d skipped. Wrote '%s'.\n",
			report.Retained, report.Total, report.Skipped, outputFile)
	default:
		fmt.Printf("Done: %d of %d frames kept. Wrote '%s'.\n",
			report.Retained, report.Total, outputFile)
	}
}

// checkWritable verifies the output document's directory accepts new files.
func checkWritable(outputFile string) error {
	dir := filepath.Dir(outputFile)
	probe, err := os.CreateTemp(dir, ".slidedup-*")
	if err != nil {
		return fmt.Errorf("output path '%s' is not writable: %w", outputFile, err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

func saveReport(enabled bool, report models.RunReport, logger *slog.Logger) {
	if !enabled {
		return
	}
	if err := storage.NewReporter().SaveReport(report); err != nil {
		logger.Warn("failed to save run report", "error", err)
	}
}
