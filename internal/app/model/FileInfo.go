package model

import "time"

// FileInfo describes a candidate media file in the source directory.
type FileInfo struct {
	FullPath string
	ModTime  time.Time
	Name     string
}
