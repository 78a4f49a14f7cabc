// Package extractor pulls still frames out of a recorded lecture video with
// ffmpeg, named with bare incrementing integers (1.jpg, 2.jpg, ...) the way
// capture tools number their screenshots.
package extractor

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ExtractFrames samples one frame every interval seconds from videoPath
// into frameDir. Extraction is skipped when frameDir already holds frames,
// so a re-run after tuning the threshold does not redo the ffmpeg pass.
func ExtractFrames(videoPath, frameDir string, interval int, logger *slog.Logger) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file does not exist at path: '%s'", videoPath)
	}

	if files, err := os.ReadDir(frameDir); err == nil && len(files) > 0 {
		frameCount := 0
		for _, file := range files {
			if !file.IsDir() && strings.HasSuffix(strings.ToLower(file.Name()), ".jpg") {
				frameCount++
			}
		}
		if frameCount > 0 {
			logger.Info("frames already exist, skipping extraction",
				"dir", frameDir, "frames", frameCount)
			return nil
		}
	}

	if err := os.MkdirAll(frameDir, 0755); err != nil {
		return fmt.Errorf("failed to create frame directory '%s': %w", frameDir, err)
	}

	logger.Info("extracting frames",
		"video", videoPath, "dir", frameDir, "interval_seconds", interval)

	ffmpegCommand := exec.Command(
		"ffmpeg",
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=1/%d", interval),
		filepath.Join(frameDir, "%d.jpg"),
	)

	output, err := ffmpegCommand.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, string(output))
	}

	logger.Info("extraction complete", "dir", frameDir)
	return nil
}
