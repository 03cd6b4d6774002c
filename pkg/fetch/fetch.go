// Package fetch materializes the remote project template into the workspace.
package fetch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/systemstart/stash-init/pkg/api"
	"github.com/systemstart/stash-init/pkg/runner"
)

// DefaultTemplateURL is the stash WordPress skeleton.
const DefaultTemplateURL = "https://github.com/undefinedio/stash"

// DefaultArtifacts are removed from the materialized tree after the copy.
var DefaultArtifacts = []string{"**/.git"}

// Fetcher clones a template into a staging directory and copies it into place.
type Fetcher struct {
	Runner    runner.Runner
	Artifacts []string // doublestar patterns relative to the destination
	TempDir   string   // parent of the staging directory; "" uses os.TempDir
}

// NewFetcher returns a Fetcher that removes DefaultArtifacts.
func NewFetcher(r runner.Runner) *Fetcher {
	return &Fetcher{Runner: r, Artifacts: DefaultArtifacts}
}

// Fetch clones sourceURL, copies the tree into destination and deletes the staging
// directory and version-control metadata. A failed clone or copy is returned as is;
// whatever was already copied stays in destination.
func (f *Fetcher) Fetch(ctx context.Context, sourceURL, destination string) error {
	staging, err := os.MkdirTemp(f.TempDir, "stash-template-*")
	if err != nil {
		return api.IOError("creating staging directory", err)
	}
	defer removeStaging(staging)

	slog.Info("cloning template", "url", sourceURL, "staging", staging)
	if err := f.Runner.Run(ctx, runner.Command("git", "clone", "--depth", "1", sourceURL, staging)); err != nil {
		return api.ToolFailure(fmt.Sprintf("git clone of %s failed (check the URL and your network)", sourceURL), err)
	}

	if err := copyTree(staging, destination); err != nil {
		return api.IOError("copying template into workspace", err)
	}

	removed, err := removeArtifacts(destination, f.Artifacts)
	if err != nil {
		return api.IOError("removing fetch artifacts", err)
	}

	slog.Info("template materialized", "destination", destination, "artifactsRemoved", len(removed))
	return nil
}

func removeStaging(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("failed to remove staging directory", "path", dir, "error", err)
	}
}

func removeArtifacts(root string, patterns []string) ([]string, error) {
	var matches []string
	for _, pattern := range patterns {
		m, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		matches = append(matches, m...)
	}
	slices.Sort(matches)
	matches = slices.Compact(matches)

	for _, rel := range matches {
		p := filepath.Join(root, filepath.FromSlash(rel))
		slog.Debug("removing fetch artifact", "path", p)
		if err := os.RemoveAll(p); err != nil {
			return nil, fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return matches, nil
}

func copyTree(src, dst string) error {
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk error at %s: %w", path, err)
		}
		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return fmt.Errorf("computing relative path for %s: %w", path, relErr)
		}
		return copyEntry(dst, rel, path, d)
	})
	if err != nil {
		return fmt.Errorf("copying tree: %w", err)
	}
	return nil
}

func copyEntry(dst, rel, srcPath string, d fs.DirEntry) error {
	target := filepath.Join(dst, rel)

	switch {
	case d.IsDir():
		if err := os.MkdirAll(target, 0o750); err != nil {
			return fmt.Errorf("creating directory %s: %w", target, err)
		}
		return nil
	case d.Type()&fs.ModeSymlink != 0:
		link, err := os.Readlink(srcPath)
		if err != nil {
			return fmt.Errorf("reading link %s: %w", srcPath, err)
		}
		if err := os.Symlink(link, target); err != nil {
			return fmt.Errorf("creating link %s: %w", target, err)
		}
		return nil
	}

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}

	info, err := d.Info()
	if err != nil {
		return fmt.Errorf("stat %s: %w", srcPath, err)
	}

	if err := os.WriteFile(target, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}
