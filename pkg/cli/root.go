// Package cli is the privatevote-deploy command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/DeBrosOfficial/privatevote/pkg/config"
	"github.com/DeBrosOfficial/privatevote/pkg/deployer"
	"github.com/DeBrosOfficial/privatevote/pkg/errors"
	"github.com/DeBrosOfficial/privatevote/pkg/logging"
	"github.com/DeBrosOfficial/privatevote/pkg/signer"
)

// BuildInfo is version metadata populated via -ldflags at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type globalFlags struct {
	configPath string
	envFile    string
	network    string
	contract   string
	artifacts  string
	logLevel   string
}

// app carries what every command needs.
type app struct {
	info   BuildInfo
	stdout io.Writer
	stderr io.Writer
	flags  globalFlags

	env          config.Env
	prompt       signer.PassphraseFunc
	deployerOpts []deployer.Option
}

// Execute runs the command line with args and returns the process exit
// status. All failures are reported on stderr; stdout only ever carries the
// deployment result.
func Execute(ctx context.Context, info BuildInfo, args []string, stdout, stderr io.Writer) int {
	a := &app{info: info, stdout: stdout, stderr: stderr, prompt: signer.TerminalPrompt}
	return a.execute(ctx, args)
}

func (a *app) execute(ctx context.Context, args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		errors.Report(a.stderr, err)
		return errors.ExitCode(err)
	}
	return errors.ExitOK
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "privatevote-deploy",
		Short: "Deploy the PrivateVote contract",
		Long: "Deploy a compiled contract (PrivateVote by default) with the first configured account\n" +
			"of the selected network, wait for it to be mined and print its address.",
		Args:          cobra.NoArgs,
		RunE:          a.runDeploy,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewValidationError("flags", err.Error(), nil)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "Config file (default ./deploy.yaml, then ~/.privatevote/deploy.yaml)")
	pf.StringVar(&a.flags.envFile, "env-file", "", "Dotenv file to load (default ./.env if present)")
	pf.StringVarP(&a.flags.network, "network", "n", "", "Network to deploy to (default from config)")
	pf.StringVar(&a.flags.contract, "contract", "", "Artifact name or fully qualified name to deploy")
	pf.StringVar(&a.flags.artifacts, "artifacts", "", "Directory holding compiled artifacts")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(a.deployCommand(), a.accountsCommand(), a.versionCommand())
	return root
}

// loadConfig builds and validates the configuration from files, environment
// and flags. Every validation problem is printed before failing.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		Path:    a.flags.configPath,
		EnvFile: a.flags.envFile,
		Network: a.flags.network,
		Env:     a.env,
	})
	if err != nil {
		return nil, errors.NewValidationError("config", err.Error(), a.flags.configPath)
	}

	if a.flags.contract != "" {
		cfg.Deploy.Contract = a.flags.contract
	}
	if a.flags.artifacts != "" {
		cfg.Paths.Artifacts = a.flags.artifacts
	}
	if a.flags.logLevel != "" {
		cfg.Logging.Level = a.flags.logLevel
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Fprintf(a.stderr, "Configuration errors (%d):\n", len(errs))
		for _, e := range errs {
			fmt.Fprintf(a.stderr, "  - %v\n", e)
		}
		source := cfg.Source
		if source == "" {
			source = "defaults"
		}
		return nil, errors.NewValidationError("config",
			fmt.Sprintf("%d problem(s) in %s", len(errs), source), nil)
	}
	return cfg, nil
}

func (a *app) newLogger(cfg *config.Config) (*logging.ColoredLogger, error) {
	return logging.New(logging.Options{
		Output:       a.stderr,
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		EnableColors: cfg.Logging.UseColors(isTerminal(a.stderr)),
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
