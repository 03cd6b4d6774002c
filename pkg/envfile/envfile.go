// Package envfile derives the runtime .env file from the template's .env.example.
package envfile

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/systemstart/stash-init/pkg/api"
)

const (
	TemplateFilename = ".env.example"
	OutputFilename   = ".env"
)

// Substitution replaces every occurrence of Token with the value built from the answers.
type Substitution struct {
	Name  string
	Token string
	Value func(answers *api.AnswerRecord) string
}

// Substitutions returns the recognized tokens. Tokens are pairwise disjoint, so the
// order of application does not matter. WP_URL is the one canonical site host and
// feeds both WP_HOME and WP_SITEURL.
func Substitutions() []Substitution {
	return []Substitution{
		assign(api.DBName, "DB_NAME=wp_example"),
		assign(api.DBUser, "DB_USER=root"),
		assign(api.DBPassword, "DB_PASSWORD=root"),
		assign(api.DBHost, "DB_HOST=localhost"),
		assign(api.WPEnv, "WP_ENV=development"),
		{
			Name:  "WP_HOME",
			Token: "WP_HOME=http://example.com",
			Value: func(a *api.AnswerRecord) string { return "WP_HOME=" + siteURL(a) },
		},
		{
			Name:  "WP_SITEURL",
			Token: "WP_SITEURL=http://example.com/wp",
			Value: func(a *api.AnswerRecord) string { return "WP_SITEURL=" + siteURL(a) + "/wp" },
		},
	}
}

func assign(name, token string) Substitution {
	return Substitution{
		Name:  name,
		Token: token,
		Value: func(a *api.AnswerRecord) string { return name + "=" + a.String(name) },
	}
}

func siteURL(a *api.AnswerRecord) string {
	return "http://" + a.String(api.WPURL)
}

// Apply performs all substitutions on text. Values are inserted verbatim.
func Apply(text string, answers *api.AnswerRecord) string {
	for _, s := range Substitutions() {
		if !strings.Contains(text, s.Token) {
			slog.Debug("env token not present", "name", s.Name)
			continue
		}
		text = strings.ReplaceAll(text, s.Token, s.Value(answers))
	}
	return text
}

// Render reads the template and returns the substituted text.
func Render(templatePath string, answers *api.AnswerRecord) (string, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return "", api.IOError(fmt.Sprintf("reading file %s didn't succeed", templatePath), err)
	}
	return Apply(string(data), answers), nil
}

// Write renders templatePath and writes the result to outputPath.
func Write(templatePath, outputPath string, answers *api.AnswerRecord) error {
	text, err := Render(templatePath, answers)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, []byte(text), 0o600); err != nil {
		return api.IOError(fmt.Sprintf("writing %s file didn't succeed", outputPath), err)
	}

	// The admin CLI parses this file on its own; parse it here only to report what it will see.
	if env, err := godotenv.Unmarshal(text); err != nil {
		slog.Warn("written env file is not valid dotenv syntax", "path", outputPath, "error", err)
	} else {
		slog.Info("done writing env", "path", outputPath, "keys", len(env))
	}
	return nil
}
