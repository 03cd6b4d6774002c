package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/systemstart/stash-init/pkg/api"
	"github.com/systemstart/stash-init/pkg/runner"
	"github.com/systemstart/stash-init/pkg/runner/runnertest"
)

// fakeClone writes a small template tree, git metadata included, into the clone target.
func fakeClone(t *testing.T) func(runner.Invocation) error {
	t.Helper()
	return func(inv runner.Invocation) error {
		target := inv.Args[len(inv.Args)-1]
		files := map[string]string{
			".env.example":               "DB_NAME=wp_example\n",
			"composer.json":              "{}\n",
			"web/app/themes/stash/a.php": "<?php\n",
			".git/HEAD":                  "ref: refs/heads/master\n",
			"vendor/lib/.git/HEAD":       "ref: refs/heads/main\n",
		}
		for name, content := range files {
			p := filepath.Join(target, name)
			if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
				return err
			}
			if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
				return err
			}
		}
		return nil
	}
}

func TestFetch(t *testing.T) {
	dest := t.TempDir()
	tmp := t.TempDir()
	rec := &runnertest.Recorder{Handler: fakeClone(t)}
	f := &Fetcher{Runner: rec, Artifacts: DefaultArtifacts, TempDir: tmp}

	if err := f.Fetch(context.Background(), "https://example.com/tpl.git", dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{".env.example", "composer.json", "web/app/themes/stash/a.php"} {
		if _, err := os.Stat(filepath.Join(dest, want)); err != nil {
			t.Errorf("expected %s in destination: %v", want, err)
		}
	}
	for _, gone := range []string{".git", "vendor/lib/.git"} {
		if _, err := os.Stat(filepath.Join(dest, gone)); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed, stat err = %v", gone, err)
		}
	}

	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected staging directory to be removed, found %d entries", len(entries))
	}

	if len(rec.Calls) != 1 {
		t.Fatalf("expected one invocation, got %v", rec.Commands())
	}
	call := rec.Calls[0]
	if call.Name != "git" || call.Args[0] != "clone" || call.Args[3] != "https://example.com/tpl.git" {
		t.Errorf("unexpected clone invocation: %v", call)
	}
}

func TestFetch_CloneFailure(t *testing.T) {
	dest := t.TempDir()
	rec := &runnertest.Recorder{Handler: func(runner.Invocation) error { return errors.New("exit status 128") }}
	f := &Fetcher{Runner: rec, Artifacts: DefaultArtifacts, TempDir: t.TempDir()}

	err := f.Fetch(context.Background(), "https://example.com/missing.git", dest)
	if err == nil {
		t.Fatal("expected error")
	}
	if api.KindOf(err) != api.KindToolFailure {
		t.Errorf("expected tool failure, got %q", api.KindOf(err))
	}

	entries, _ := os.ReadDir(dest)
	if len(entries) != 0 {
		t.Errorf("expected nothing copied after failed clone, got %d entries", len(entries))
	}
}

func TestRemoveArtifacts_NoMatches(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.php"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	removed, err := removeArtifacts(root, []string{"**/.git", "*.orig"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(removed) != 0 {
		t.Errorf("expected nothing removed, got %v", removed)
	}
	if _, err := os.Stat(filepath.Join(root, "index.php")); err != nil {
		t.Errorf("index.php should survive: %v", err)
	}
}

func TestCopyTree_PreservesModeAndLinks(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	if err := os.WriteFile(filepath.Join(src, "run.sh"), []byte("#!/bin/sh\n"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("run.sh", filepath.Join(src, "link.sh")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	if err := copyTree(src, dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(filepath.Join(dst, "run.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o750 {
		t.Errorf("expected mode 0750, got %v", info.Mode().Perm())
	}

	link, err := os.Readlink(filepath.Join(dst, "link.sh"))
	if err != nil {
		t.Fatalf("expected symlink: %v", err)
	}
	if link != "run.sh" {
		t.Errorf("expected link to run.sh, got %q", link)
	}
}
