// Package plugins requests the optional WordPress plugins the user asked for.
package plugins

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/systemstart/stash-init/pkg/api"
	"github.com/systemstart/stash-init/pkg/runner"
)

// ACFProPackage is the composer package served by the custom "acf" repository.
const ACFProPackage = "advanced-custom-fields/advanced-custom-fields-pro"

// Request ties an answer flag to the composer packages it pulls in.
type Request struct {
	Flag     string
	Packages []string
	Dev      bool
}

// Args returns the composer arguments for this request.
func (r Request) Args() []string {
	args := []string{"require"}
	if r.Dev {
		args = append(args, "--dev")
	}
	return append(args, r.Packages...)
}

// Requests returns the optional plugins in provisioning order.
func Requests() []Request {
	return []Request{
		{Flag: api.PluginPolylang, Packages: []string{"wpackagist-plugin/polylang"}},
		{Flag: api.PluginNinja, Packages: []string{"wpackagist-plugin/ninja-forms"}},
		{Flag: api.PluginYoast, Packages: []string{"wpackagist-plugin/wordpress-seo"}},
		{Flag: api.PluginWordfence, Packages: []string{"wpackagist-plugin/wordfence"}},
		{Flag: api.PluginACFPro, Packages: []string{ACFProPackage}},
		{
			Flag: api.PluginDebug,
			Packages: []string{
				"wpackagist-plugin/debug-bar",
				"wpackagist-plugin/debug-bar-cron",
				"wpackagist-plugin/debug-bar-actions-and-filters-addon",
				"wpackagist-plugin/debug-bar-timber",
			},
			Dev: true,
		},
	}
}

// Provisioner runs one composer require per requested plugin.
type Provisioner struct {
	Runner   runner.Runner
	Composer string
	Dir      string // composer project directory; "" leaves it to the runner
	Requests []Request
}

// NewProvisioner returns a Provisioner over the standard request list.
func NewProvisioner(r runner.Runner) *Provisioner {
	return &Provisioner{Runner: r, Composer: "composer", Requests: Requests()}
}

// Selected returns the requests whose flag is truthy in answers, in declared order.
func (p *Provisioner) Selected(answers *api.AnswerRecord) []Request {
	var selected []Request
	for _, req := range p.Requests {
		if answers.Truthy(req.Flag) {
			selected = append(selected, req)
		}
	}
	return selected
}

// Provision requires each selected plugin in turn and stops at the first failure.
func (p *Provisioner) Provision(ctx context.Context, answers *api.AnswerRecord) error {
	for _, req := range p.Requests {
		if err := p.ProvisionOne(ctx, answers, req); err != nil {
			return err
		}
	}
	return nil
}

// ProvisionOne requires req if its flag is truthy in answers and does nothing otherwise.
func (p *Provisioner) ProvisionOne(ctx context.Context, answers *api.AnswerRecord, req Request) error {
	if !answers.Truthy(req.Flag) {
		slog.Debug("plugin not requested", "flag", req.Flag)
		return nil
	}
	return p.Require(ctx, req)
}

// Require runs composer require for a single request.
func (p *Provisioner) Require(ctx context.Context, req Request) error {
	slog.Info("requiring plugin", "flag", req.Flag, "packages", req.Packages)
	if err := p.Runner.Run(ctx, runner.Command(p.Composer, req.Args()...).In(p.Dir)); err != nil {
		return api.ToolFailure(fmt.Sprintf("%s require %v failed", p.Composer, req.Packages), err)
	}
	return nil
}
