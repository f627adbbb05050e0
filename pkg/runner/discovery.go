package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/jsxmigrate/pkg/langdetect"
)

// Discover finds JS/TS source files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	ignore, err := CompileIgnore(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		ignore:     ignore,
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			// Explicit files bypass the hidden-name filter but not the others.
			if w.accepts(absPath) {
				w.add(absPath)
			}
			continue
		}

		if err := w.walk(ctx, absPath); err != nil {
			return nil, err
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walker accumulates discovered files across every input path.
type walker struct {
	workDir    string
	extensions []string
	ignore     *IgnoreSet
	opts       Options

	seen  map[string]struct{}
	files []string
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// rel returns path relative to the working directory, slash separated.
func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// accepts reports whether a file passes the extension, vendored and
// ignore filters.
func (w *walker) accepts(path string) bool {
	if !langdetect.Supported(path, w.extensions) {
		return false
	}
	rel := w.rel(path)
	if !w.opts.IncludeVendored && langdetect.IsVendored(rel) {
		return false
	}
	return !w.ignore.Match(rel)
}

// prunes reports whether the walk should skip the directory at path.
func (w *walker) prunes(path, root string, entry fs.DirEntry) bool {
	if path == root {
		return false
	}
	if strings.HasPrefix(entry.Name(), ".") {
		return true
	}
	rel := w.rel(path)
	if !w.opts.IncludeVendored && langdetect.IsVendored(rel+"/") {
		return true
	}
	return w.ignore.Match(rel)
}

func (w *walker) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if w.prunes(path, root, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.symlink(ctx, path)
		}

		if w.accepts(path) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a link met during the walk. Broken links are skipped;
// directory links are followed only with FollowSymlinks, by walking the
// resolved target so WalkDir never recurses through the link itself.
func (w *walker) symlink(ctx context.Context, path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken link
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable target
	}

	if !info.IsDir() {
		if w.accepts(path) {
			w.add(path)
		}
		return nil
	}
	if !w.opts.FollowSymlinks {
		return nil
	}
	return w.walk(ctx, target)
}
