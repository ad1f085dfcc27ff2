package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Extension is the suffix of every iteration file.
const Extension = ".jpeg"

// EnsureFolder creates folder and its parents. It is a no-op when folder exists.
func EnsureFolder(folder string) error {
	return os.MkdirAll(folder, 0o755)
}

// PathFor returns the file for iteration index: at least three digits, zero padded.
func PathFor(folder string, index int) string {
	return filepath.Join(folder, fmt.Sprintf("%03d%s", index, Extension))
}

// ResolveStart returns the index the run in folder continues from: one past the
// highest existing iteration, or 0 when folder holds no regular files. Gaps are
// not filled.
func ResolveStart(folder string) (int, error) {
	names, err := listFiles(folder)
	if err != nil {
		return 0, err
	}
	return resolve(folder, names)
}

func resolve(folder string, names []string) (int, error) {
	next, err := NextIndex(names)
	if msErr, ok := err.(*MalformedStateError); ok {
		msErr.Folder = folder
	}
	return next, err
}

// listFiles returns the names of the regular files directly under folder.
// Symlinks count when they resolve to a regular file.
func listFiles(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	files := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		if e.Type()&fs.ModeSymlink == 0 {
			return e.Type().IsRegular()
		}
		fi, err := os.Stat(filepath.Join(folder, e.Name()))
		return err == nil && fi.Mode().IsRegular()
	})
	return lo.Map(files, func(e os.DirEntry, _ int) string {
		return e.Name()
	}), nil
}

// NextIndex derives the resume index from iteration file names.
func NextIndex(names []string) (int, error) {
	if len(names) == 0 {
		return 0, nil
	}

	indices := make([]int, 0, len(names))
	for _, name := range names {
		index, err := parseIndex(name)
		if err != nil {
			return 0, &MalformedStateError{Name: name, Err: err}
		}
		indices = append(indices, index)
	}
	return lo.Max(indices) + 1, nil
}

func parseIndex(name string) (int, error) {
	prefix, _, _ := strings.Cut(name, ".")
	index, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, err
	}
	if index < 0 {
		return 0, ErrNegativeIndex
	}
	return index, nil
}
