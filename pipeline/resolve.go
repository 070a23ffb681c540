package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/cwbudde/algo-raman/spectra/specfile"
)

// ErrNoInput is returned by Resolve when no files were found.
var ErrNoInput = errors.New("pipeline: no input files")

// Resolve expands roots into a sorted, duplicate-free file list. File roots
// are kept as given. Directory roots contribute their files with a supported
// extension, either direct children only or, with recursive, the whole tree.
func Resolve(roots []string, recursive bool) ([]string, error) {
	var out []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("pipeline: resolving input: %w", err)
		}
		if !info.IsDir() {
			out = append(out, root)
			continue
		}
		found, err := scanDir(root, recursive)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}

	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil, ErrNoInput
	}
	return out, nil
}

func scanDir(dir string, recursive bool) ([]string, error) {
	var out []string
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("pipeline: listing %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.Type().IsRegular() && specfile.Supported(e.Name()) {
				out = append(out, filepath.Join(dir, e.Name()))
			}
		}
		return out, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && specfile.Supported(path) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: walking %s: %w", dir, err)
	}
	return out, nil
}
