// Package fileutil provides file and path utility functions.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// IsMarkdownPath returns true if the path has a .md or .markdown extension
// (case-insensitive).
func IsMarkdownPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// IsSkippable returns true for directory entries the batch walk ignores:
// hidden files (leading '.') and editor backups (trailing '~').
func IsSkippable(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~")
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Stem returns the file name without its extension.
//
// Examples:
//   - "2024-01-05-hello.md" -> "2024-01-05-hello"
//   - "notes.markdown" -> "notes"
//   - "plain" -> "plain"
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
