// If you are AI: This file scans source folders for video files.
// A folder argument may join several paths with '|'; each path is listed in name order.

package clip

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathSeparator joins several directories into one logical folder.
const PathSeparator = "|"

// ErrNoClips is returned when a folder holds no video files.
var ErrNoClips = errors.New("no video files found")

// videoExtensions lists the container extensions picked up by Scan.
var videoExtensions = map[string]bool{
	".mp4": true, ".m4v": true, ".mkv": true, ".mov": true, ".avi": true, ".webm": true,
	".wmv": true, ".flv": true, ".ts": true, ".mts": true, ".m2ts": true, ".mpg": true,
	".mpeg": true, ".3gp": true, ".ogv": true,
}

// IsVideo reports whether name has a known video extension.
func IsVideo(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

// SplitFolder splits a multi-path folder argument into its paths.
func SplitFolder(folder string) []string {
	var out []string
	for _, p := range strings.Split(folder, PathSeparator) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Scan lists the video files of a folder argument. Paths are scanned in the given order,
// files within each path by name. A path naming a single video file is taken as is.
func Scan(folder string) ([]*Clip, error) {
	paths := SplitFolder(folder)
	if len(paths) == 0 {
		return nil, fmt.Errorf("scan %q: empty folder argument", folder)
	}

	var clips []*Clip
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("scan %q: %w", path, err)
		}
		if !info.IsDir() {
			if !IsVideo(path) {
				return nil, fmt.Errorf("scan %q: not a directory or video file", path)
			}
			clips = append(clips, New(path))
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("scan %q: %w", path, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !IsVideo(entry.Name()) {
				continue
			}
			clips = append(clips, New(filepath.Join(path, entry.Name())))
		}
	}

	if len(clips) == 0 {
		return nil, fmt.Errorf("scan %q: %w", folder, ErrNoClips)
	}
	return clips, nil
}
