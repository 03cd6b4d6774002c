// Package message renders the texts shown before prompting and after a completed run.
package message

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/systemstart/stash-init/pkg/api"
)

const welcomeTemplate = `Welcome to the {{ .name | title }} generator!
This will provision a new WordPress installation in {{ .dir }}.
`

const completionTemplate = `Site:     http://{{ .WP_URL }}
Admin:    http://{{ .WP_URL }}/wp/wp-admin
Username: {{ .ADMIN_USERNAME }}
Password: {{ .ADMIN_PW }}
{{- with .plugins }}
Plugins:  {{ join ", " . }}
{{- end }}

Nice! now just run gulp!
`

// Welcome renders the greeting shown before the questions.
func Welcome(name, dir string) (string, error) {
	return render("welcome", welcomeTemplate, map[string]any{"name": name, "dir": dir})
}

// Completion renders the summary shown once every phase succeeded. plugins lists the
// answer flags that were provisioned.
func Completion(answers *api.AnswerRecord, plugins []string) (string, error) {
	data := answers.Map()
	data["plugins"] = plugins
	return render("completion", completionTemplate, data)
}

func render(name, text string, data map[string]any) (string, error) {
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}
