package registry

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListDevelopers returns the sorted namespace folder names under
// root/developers. Non-directory entries are skipped.
func ListDevelopers(root string) ([]string, error) {
	devDir := filepath.Join(root, DevelopersDir)
	entries, err := os.ReadDir(devDir)
	if err != nil {
		return nil, fmt.Errorf("reading developers directory %s: %w", devDir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// checkFolder walks a developer folder and reports file hygiene violations:
// symlinks, hidden files, non-.yaml extensions (case-sensitive), oversized
// files, and an oversized folder total. These run before any file is parsed.
func checkFolder(root, dir string) []Violation {
	var violations []Violation
	var totalSize int64

	filepath.WalkDir(filepath.Join(root, dir), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			violations = append(violations, Violation{
				Kind:    KindParse,
				File:    relPath(root, path),
				Message: fmt.Sprintf("unreadable entry: %v", err),
			})
			return nil
		}

		rel := relPath(root, path)

		if d.Type()&fs.ModeSymlink != 0 {
			violations = append(violations, Violation{
				Kind:    KindParse,
				File:    rel,
				Message: "symbolic links are not allowed",
			})
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			violations = append(violations, Violation{
				Kind:    KindParse,
				File:    rel,
				Message: "hidden files are not allowed",
			})
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		// Extension check is case-sensitive: exactly ".yaml".
		if ext := filepath.Ext(d.Name()); ext != YAMLExt {
			violations = append(violations, Violation{
				Kind:    KindParse,
				File:    rel,
				Message: fmt.Sprintf("disallowed file type %q (only lowercase .yaml allowed)", ext),
			})
			return nil
		}

		if info, err := d.Info(); err == nil {
			totalSize += info.Size()
			if info.Size() > maxDocumentSize {
				violations = append(violations, Violation{
					Kind:    KindParse,
					File:    rel,
					Message: fmt.Sprintf("file too large: %d bytes (max %d)", info.Size(), maxDocumentSize),
				})
			}
		}
		return nil
	})

	if totalSize > maxFolderSize {
		violations = append(violations, Violation{
			Kind:    KindParse,
			File:    dir,
			Message: fmt.Sprintf("folder total %d bytes exceeds limit (%d bytes)", totalSize, maxFolderSize),
		})
	}

	return violations
}

// relPath returns path relative to the registry root with forward slashes,
// for stable diagnostics across platforms.
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
