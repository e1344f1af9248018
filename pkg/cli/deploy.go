package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/privatevote/pkg/deployer"
	"github.com/DeBrosOfficial/privatevote/pkg/logging"
)

func (a *app) deployCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the contract and print its address (default command)",
		Args:  cobra.NoArgs,
		RunE:  a.runDeploy,
	}
}

func (a *app) runDeploy(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	logger, err := a.newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Source != "" {
		logger.ComponentDebug(logging.ComponentCLI, "Loaded config", zap.String("path", cfg.Source))
	}

	opts := []deployer.Option{
		deployer.WithLogger(logger),
		deployer.WithPassphrasePrompt(a.prompt),
	}
	d, err := deployer.New(cfg, append(opts, a.deployerOpts...)...)
	if err != nil {
		return err
	}

	dep, err := d.Run(cmd.Context())
	if err != nil {
		return err
	}

	if dep.RecordPath != "" {
		logger.ComponentInfo(logging.ComponentCLI, "Deployment recorded", zap.String("path", dep.RecordPath))
	}
	fmt.Fprintf(a.stdout, "✅ %s deployed to: %s\n", dep.Contract, dep.Address.Hex())
	return nil
}
