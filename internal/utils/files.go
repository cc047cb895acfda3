package utils

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadLines reads path and returns its lines with surrounding whitespace
// trimmed. Blank lines are dropped.
func LoadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

// CountLines returns the number of non-blank lines in path. A missing file
// counts as zero lines.
func CountLines(path string) (int, error) {
	lines, err := LoadLines(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	return len(lines), nil
}

// AppendLines appends each line followed by a newline to path, creating the
// file (and its parent directory) when needed. A file whose last line is
// unterminated gets its newline first so the new lines stay separate.
func AppendLines(path string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", path, err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	terminated, err := endsWithNewline(f)
	if err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if !terminated {
		// a previous write was cut short
		w.WriteByte('\n') //nolint:errcheck
	}
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			f.Close() //nolint:errcheck
			return fmt.Errorf("appending to %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return f.Close()
}

// endsWithNewline reports whether f is empty or its last byte is '\n'.
func endsWithNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return true, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] == '\n', nil
}

// AddSuffixToFilename inserts suffix between the file's base name and its
// extension: ("data/a.txt", "-augment-base") -> "data/a-augment-base.txt".
func AddSuffixToFilename(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// RemoveEmptyLines rewrites path without its blank lines, leaving the other
// lines untouched. The rewrite goes through a temp file in the same directory
// and a rename. A missing file is not an error.
func RemoveEmptyLines(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var sb strings.Builder
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()        //nolint:errcheck
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return err
	}
	return os.Rename(tmpName, path)
}
