package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/systemstart/stash-init/pkg/api"
	"github.com/systemstart/stash-init/pkg/envfile"
	"github.com/systemstart/stash-init/pkg/fetch"
	"github.com/systemstart/stash-init/pkg/message"
	"github.com/systemstart/stash-init/pkg/plugins"
	"github.com/systemstart/stash-init/pkg/preflight"
	"github.com/systemstart/stash-init/pkg/prompt"
	"github.com/systemstart/stash-init/pkg/runner"
	"github.com/systemstart/stash-init/pkg/steps"
)

const (
	// ThemeName is the theme shipped by the stash template.
	ThemeName = "stash"
	// PermalinkStructure is applied with a hard flush of the rewrite rules.
	PermalinkStructure = "/%postname%/"
)

// RequiredTools are probed during preflight. FrontendTools are added unless the
// front-end dependency installation is skipped.
var (
	RequiredTools = []string{"wp", "composer", "git"}
	FrontendTools = []string{"npm", "bower"}
)

// Dependencies are the collaborators the standard pipeline drives.
type Dependencies struct {
	WorkDir         string
	TemplateURL     string
	LicenseEndpoint string
	SkipInstall     bool

	Runner      runner.Runner
	Preflight   *preflight.Checker
	Prompter    prompt.Prompter
	Questions   func() []api.Question
	License     *plugins.LicenseValidator
	Fetcher     *fetch.Fetcher
	Provisioner *plugins.Provisioner

	Out io.Writer // welcome and completion text
}

// Standard builds the provisioning phases in their required order.
func Standard(d Dependencies) []Phase {
	return []Phase{
		{State: StatePreflight, Steps: preflightSteps(d)},
		{State: StatePrompting, Steps: []steps.Step{
			steps.NewCollectStep("collect-answers", func(ctx steps.StepContext) (*api.AnswerRecord, error) {
				if err := printWelcome(d.Out, ctx.WorkDir); err != nil {
					return nil, err
				}
				questions := api.Questions
				if d.Questions != nil {
					questions = d.Questions
				}
				return prompt.Collect(d.Prompter, questions())
			}),
		}},
		{State: StateValidating, Steps: []steps.Step{
			steps.NewFuncStep("validate-acf-key", withAnswers(func(ctx steps.StepContext, a *api.AnswerRecord) error {
				return d.License.Validate(ctx.Context, a.String(api.PluginACFPro))
			})),
		}},
		{State: StateFetching, Steps: []steps.Step{
			steps.NewFuncStep("fetch-template", func(ctx steps.StepContext) error {
				return d.Fetcher.Fetch(ctx.Context, d.TemplateURL, ctx.WorkDir)
			}),
		}},
		{State: StateConfiguring, Steps: []steps.Step{
			steps.NewFuncStep("register-acf-repositories", withAnswers(func(ctx steps.StepContext, a *api.AnswerRecord) error {
				manifest := filepath.Join(ctx.WorkDir, plugins.ManifestFilename)
				return plugins.RegisterRepositories(manifest, d.LicenseEndpoint, a.String(api.PluginACFPro))
			})),
			steps.NewFuncStep("write-env", withAnswers(func(ctx steps.StepContext, a *api.AnswerRecord) error {
				return envfile.Write(
					filepath.Join(ctx.WorkDir, envfile.TemplateFilename),
					filepath.Join(ctx.WorkDir, envfile.OutputFilename),
					a)
			})),
		}},
		{State: StateInstalling, Steps: []steps.Step{
			steps.NewToolStep("composer-install", d.Runner, steps.Fixed("composer", "install"),
				"check composer.json, the registered repositories and your network"),
			steps.NewToolStep("wp-core-install", d.Runner, coreInstall,
				"check DB credentials and see if its empty"),
		}},
		{State: StateProvisioningPlugins, Steps: pluginSteps(d.Provisioner)},
		{State: StateActivating, Steps: []steps.Step{
			steps.NewToolStep("activate-plugins", d.Runner, steps.Fixed("wp", "plugin", "activate", "--all"),
				"a required plugin could not be activated"),
			steps.NewToolStep("activate-theme", d.Runner, steps.Fixed("wp", "theme", "activate", ThemeName),
				"the stash theme is missing from the template"),
			steps.NewToolStep("rewrite-permalinks", d.Runner, steps.Fixed("wp", "rewrite", "structure", PermalinkStructure, "--hard"),
				"the rewrite rules could not be flushed"),
		}},
		{State: StateFinalizing, Steps: finalizingSteps(d)},
	}
}

func preflightSteps(d Dependencies) []steps.Step {
	s := []steps.Step{
		steps.NewFuncStep("check-workspace-empty", func(steps.StepContext) error {
			return d.Preflight.CheckWorkspaceEmpty()
		}),
	}
	for _, tool := range Tools(d.SkipInstall) {
		tool := tool
		s = append(s, steps.NewFuncStep("check-"+tool, func(ctx steps.StepContext) error {
			return d.Preflight.CheckToolAvailable(ctx.Context, tool)
		}))
	}
	return s
}

// Tools returns the tools probed during preflight.
func Tools(skipInstall bool) []string {
	tools := append([]string(nil), RequiredTools...)
	if !skipInstall {
		tools = append(tools, FrontendTools...)
	}
	return tools
}

var coreInstallAnswers = []string{api.WPURL, api.SiteTitle, api.AdminUsername, api.AdminPassword, api.AdminEmail}

func coreInstall(ctx steps.StepContext) (runner.Invocation, error) {
	a, err := ctx.RequireAnswers()
	if err != nil {
		return runner.Invocation{}, err
	}
	if missing := a.Missing(coreInstallAnswers...); len(missing) > 0 {
		return runner.Invocation{}, api.ValidationError("no answer for "+strings.Join(missing, ", "), nil)
	}
	return runner.Command("wp", "core", "install",
		"--url="+a.String(api.WPURL),
		"--title="+a.String(api.SiteTitle),
		"--admin_user="+a.String(api.AdminUsername),
		"--admin_password="+a.String(api.AdminPassword),
		"--admin_email="+a.String(api.AdminEmail),
	), nil
}

func pluginSteps(p *plugins.Provisioner) []steps.Step {
	s := make([]steps.Step, 0, len(p.Requests))
	for _, req := range p.Requests {
		req := req
		s = append(s, steps.NewFuncStep(pluginStepName(req.Flag), withAnswers(func(ctx steps.StepContext, a *api.AnswerRecord) error {
			return p.ProvisionOne(ctx.Context, a, req)
		})))
	}
	return s
}

func pluginStepName(flag string) string {
	name := strings.TrimPrefix(flag, "PLUGIN_")
	return "require-" + strings.ReplaceAll(strings.ToLower(name), "_", "-")
}

func finalizingSteps(d Dependencies) []steps.Step {
	var s []steps.Step
	if !d.SkipInstall {
		s = append(s,
			steps.NewToolStep("npm-install", d.Runner, steps.Fixed("npm", "install"),
				"check package.json and your network"),
			steps.NewToolStep("bower-install", d.Runner, steps.Fixed("bower", "install"),
				"check bower.json and your network"),
		)
	}
	s = append(s, steps.NewFuncStep("print-completion", withAnswers(func(_ steps.StepContext, a *api.AnswerRecord) error {
		var flags []string
		for _, req := range d.Provisioner.Selected(a) {
			flags = append(flags, req.Flag)
		}
		text, err := message.Completion(a, flags)
		if err != nil {
			return fmt.Errorf("rendering completion message: %w", err)
		}
		_, err = io.WriteString(d.Out, text)
		return err
	})))
	return s
}

func printWelcome(w io.Writer, dir string) error {
	text, err := message.Welcome(ThemeName, dir)
	if err != nil {
		return fmt.Errorf("rendering welcome message: %w", err)
	}
	_, err = io.WriteString(w, text)
	return err
}

func withAnswers(fn func(ctx steps.StepContext, a *api.AnswerRecord) error) func(steps.StepContext) error {
	return func(ctx steps.StepContext) error {
		a, err := ctx.RequireAnswers()
		if err != nil {
			return err
		}
		return fn(ctx, a)
	}
}
