package plugins

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/systemstart/stash-init/pkg/api"
)

const (
	ManifestFilename = "composer.json"

	wpackagistAlias = "packagist"
	wpackagistURL   = "https://wpackagist.org"
	acfAlias        = "acf"
	acfVersion      = "5.3"
)

// Repositories returns the composer repositories needed to install ACF pro with key.
func Repositories(endpoint, key string) map[string]any {
	return map[string]any{
		wpackagistAlias: map[string]any{
			"type": "composer",
			"url":  wpackagistURL,
		},
		acfAlias: map[string]any{
			"type": "package",
			"package": map[string]any{
				"name":    ACFProPackage,
				"version": acfVersion,
				"type":    "wordpress-plugin",
				"dist": map[string]any{
					"type": "zip",
					"url":  DownloadURL(endpoint, key),
				},
			},
		},
	}
}

// RegisterRepositories adds the wpackagist and ACF pro repositories to the composer
// manifest at path. Repositories already declared are kept; an empty key is a no-op.
func RegisterRepositories(path, endpoint, key string) error {
	if key == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return api.IOError("reading composer.json didn't succeed", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return api.IOError("reading composer.json didn't succeed", err)
	}

	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		return api.IOError("parsing composer.json didn't succeed", err)
	}
	if manifest == nil {
		manifest = make(map[string]any)
	}

	repos, err := mergeRepositories(manifest["repositories"], Repositories(endpoint, key))
	if err != nil {
		return api.IOError("updating composer.json repositories", err)
	}
	manifest["repositories"] = repos

	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(manifest); err != nil {
		return api.IOError("encoding composer.json", err)
	}

	if err := os.WriteFile(path, out.Bytes(), info.Mode().Perm()); err != nil {
		return api.IOError("writing composer.json didn't succeed", err)
	}

	slog.Info("registered composer repositories", "path", path, "aliases", []string{wpackagistAlias, acfAlias})
	return nil
}

// mergeRepositories adds added to existing, which composer allows as either an object
// keyed by alias or a list.
func mergeRepositories(existing any, added map[string]any) (any, error) {
	switch repos := existing.(type) {
	case nil:
		return added, nil
	case map[string]any:
		for alias, repo := range added {
			repos[alias] = repo
		}
		return repos, nil
	case []any:
		for _, alias := range []string{wpackagistAlias, acfAlias} {
			repos = append(repos, added[alias])
		}
		return repos, nil
	default:
		return nil, fmt.Errorf("unexpected repositories type %T", existing)
	}
}
