package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/systemstart/stash-init/pkg/api"
	"github.com/systemstart/stash-init/pkg/fetch"
	"github.com/systemstart/stash-init/pkg/logging"
	"github.com/systemstart/stash-init/pkg/pipeline"
	"github.com/systemstart/stash-init/pkg/plugins"
	"github.com/systemstart/stash-init/pkg/preflight"
	"github.com/systemstart/stash-init/pkg/prompt"
	"github.com/systemstart/stash-init/pkg/runner"
)

var version = "dev"

const (
	_ = iota
	exitUsage
	exitEnvironment
	exitValidation
	exitIO
	exitToolFailure
	exitOther
)

const licenseTimeout = 30 * time.Second

var (
	workDirectory   string
	templateURL     string
	answersFile     string
	acceptDefaults  bool
	skipInstall     bool
	toolTimeout     time.Duration
	licenseEndpoint string
	loggingType     string
	logLevel        string
	showVersion     bool
)

func init() {
	flag.StringVar(
		&workDirectory,
		"workdir",
		".",
		"empty directory to provision the site in")
	flag.StringVar(
		&templateURL,
		"template-url",
		fetch.DefaultTemplateURL,
		"git URL of the site template")
	flag.StringVar(
		&answersFile,
		"answers-file",
		"",
		"pre-filled answers (.yaml/.yml or dotenv)")
	flag.BoolVar(
		&acceptDefaults,
		"defaults",
		false,
		"accept the default for every unanswered question without prompting")
	flag.BoolVar(
		&skipInstall,
		"skip-install",
		false,
		"skip the npm and bower installs")
	flag.DurationVar(
		&toolTimeout,
		"tool-timeout",
		0,
		"limit for each external tool run (0 = unlimited)")
	flag.StringVar(
		&licenseEndpoint,
		"license-endpoint",
		plugins.DefaultLicenseEndpoint,
		"ACF pro download endpoint")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text, tint or pterm")
	flag.StringVar(
		&logLevel,
		"log-level",
		"info",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := logging.Initialize(loggingType, logLevel, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}

	workDir, err := filepath.Abs(workDirectory)
	if err != nil {
		slog.Error("failed to resolve work directory", "directory", workDirectory, "error", err)
		os.Exit(exitUsage)
	}

	prompter := buildPrompter()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := run(ctx, workDir, prompter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stash-init: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}

	slog.Info("done", "state", report.State, "steps", len(report.Steps))
}

func run(ctx context.Context, workDir string, prompter prompt.Prompter) (*pipeline.Report, error) {
	tools := runner.NewExec(workDir, toolTimeout)

	license := plugins.NewLicenseValidator(&http.Client{Timeout: licenseTimeout})
	license.Endpoint = licenseEndpoint

	provisioner := plugins.NewProvisioner(tools)
	provisioner.Dir = workDir

	deps := pipeline.Dependencies{
		WorkDir:         workDir,
		TemplateURL:     templateURL,
		LicenseEndpoint: licenseEndpoint,
		SkipInstall:     skipInstall,
		Runner:          tools,
		Preflight:       preflight.NewChecker(workDir, tools),
		Prompter:        prompter,
		License:         license,
		Fetcher:         fetch.NewFetcher(tools),
		Provisioner:     provisioner,
		Out:             os.Stdout,
	}

	p := &pipeline.Pipeline{
		Phases:   pipeline.Standard(deps),
		WorkDir:  workDir,
		Observer: newProgress(os.Stdout, isTerminal(os.Stdout)),
	}
	return p.Run(ctx)
}

// buildPrompter picks where answers come from: the answers file first, then the
// defaults or an interactive prompter.
func buildPrompter() prompt.Prompter {
	var values map[string]any
	if answersFile != "" {
		var err error
		values, err = api.LoadAnswersFile(answersFile, api.Questions())
		if err != nil {
			slog.Error("failed to load answers file", "filename", answersFile, "error", err)
			os.Exit(exitUsage)
		}
		slog.Info("using answers file", "filename", answersFile, "answers", len(values))
	}

	if acceptDefaults {
		return &prompt.Static{Values: presetAnswers(api.Questions(), values)}
	}

	var interactive prompt.Prompter = prompt.NewConsole(os.Stdin, os.Stdout)
	if isTerminal(os.Stdin) {
		interactive = prompt.Terminal{}
	}
	if answersFile == "" {
		return interactive
	}
	return &prompt.Static{Values: values, Fallback: interactive}
}

// presetAnswers lays the answers file over the default of every question.
func presetAnswers(questions []api.Question, fileValues map[string]any) map[string]any {
	defaults := make(map[string]any, len(questions))
	for _, q := range questions {
		defaults[q.Name] = q.Default
	}
	return api.MergeAnswers(defaults, fileValues)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func exitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return exitOther
	}
	switch api.KindOf(err) {
	case api.KindEnvironment:
		return exitEnvironment
	case api.KindValidation:
		return exitValidation
	case api.KindIO:
		return exitIO
	case api.KindToolFailure:
		return exitToolFailure
	default:
		return exitOther
	}
}
