package plugins

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/systemstart/stash-init/pkg/api"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), ManifestFilename)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func readManifest(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("manifest is not JSON: %v", err)
	}
	return m
}

func TestRegisterRepositories(t *testing.T) {
	path := writeManifest(t, `{
    "name": "undefined/stash",
    "repositories": {"custom": {"type": "vcs", "url": "https://example.com/repo.git"}},
    "require": {"php": ">=5.6"}
}`)

	if err := RegisterRepositories(path, "https://connect.example.com/index.php", "KEY1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := readManifest(t, path)
	if m["name"] != "undefined/stash" {
		t.Errorf("unrelated keys must survive, got name=%v", m["name"])
	}
	repos, ok := m["repositories"].(map[string]any)
	if !ok {
		t.Fatalf("expected repositories object, got %T", m["repositories"])
	}
	for _, alias := range []string{"custom", "packagist", "acf"} {
		if _, ok := repos[alias]; !ok {
			t.Errorf("missing repository %q", alias)
		}
	}

	acf := repos["acf"].(map[string]any)
	pkg := acf["package"].(map[string]any)
	dist := pkg["dist"].(map[string]any)
	if pkg["name"] != ACFProPackage || pkg["type"] != "wordpress-plugin" {
		t.Errorf("unexpected acf package: %v", pkg)
	}
	if dist["url"] != "https://connect.example.com/index.php?a=download&k=KEY1&p=pro" {
		t.Errorf("unexpected dist url %v", dist["url"])
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), `\u0026`) {
		t.Error("URLs should not be HTML-escaped")
	}
}

func TestRegisterRepositories_ListForm(t *testing.T) {
	path := writeManifest(t, `{"repositories": [{"type": "vcs", "url": "https://example.com/a.git"}]}`)

	if err := RegisterRepositories(path, DefaultLicenseEndpoint, "KEY"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repos, ok := readManifest(t, path)["repositories"].([]any)
	if !ok || len(repos) != 3 {
		t.Fatalf("expected three list entries, got %v", repos)
	}
}

func TestRegisterRepositories_EmptyKeyIsNoop(t *testing.T) {
	content := `{"name": "x"}`
	path := writeManifest(t, content)

	if err := RegisterRepositories(path, DefaultLicenseEndpoint, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != content {
		t.Errorf("manifest changed for empty key: %s", data)
	}
}

func TestRegisterRepositories_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
	}{
		{name: "missing file", missing: true},
		{name: "invalid json", content: "{nope"},
		{name: "bad repositories type", content: `{"repositories": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestFilename)
			if !tt.missing {
				path = writeManifest(t, tt.content)
			}
			err := RegisterRepositories(path, DefaultLicenseEndpoint, "KEY")
			if api.KindOf(err) != api.KindIO {
				t.Fatalf("expected io error, got %v", err)
			}
		})
	}
}
