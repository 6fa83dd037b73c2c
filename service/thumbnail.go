package service

import (
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// MakeThumbnail extracts a single frame from the video at src and writes it
// to dest as an image.
func MakeThumbnail(src, dest string) error {
	zap.L().Debug("Creating thumbnail for video", zap.String("src", src))
	now := time.Now()

	// -ss before the input seeks to the first millisecond before the file opens
	// (uses key-frame seeking so that it's faster)
	cmd := exec.Command("ffmpeg", "-loglevel", "error", "-ss", "0", "-i", src, "-frames:v", "1", "-q:v", "2", "-vf", "scale=-1:320", dest, "-y")

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to create thumbnail for video, %w", err)
	}

	zap.L().Debug("Finished creating thumbnail", zap.Duration("took", time.Since(now)))

	return nil
}
