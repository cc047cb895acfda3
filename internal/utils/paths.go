package utils

import "path/filepath"

// ResolvePath returns path unchanged when it is absolute or baseDir is empty,
// otherwise path joined onto baseDir.
func ResolvePath(path, baseDir string) string {
	if path == "" || baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}
