package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DeBrosOfficial/privatevote/pkg/errors"
	"github.com/DeBrosOfficial/privatevote/pkg/signer"
)

func (a *app) accountsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the accounts configured for the selected network",
		Long:  "List the signer addresses of the selected network in the order deploy picks them. No network call is made.",
		Args:  cobra.NoArgs,
		RunE:  a.runAccounts,
	}
}

func (a *app) runAccounts(_ *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	name, nc, err := cfg.Network("")
	if err != nil {
		return errors.NewValidationError("network", err.Error(), name)
	}

	signers, err := signer.Resolve(nc.Accounts,
		signer.WithNetwork(name),
		signer.WithEnv(cfg.LookupEnv),
		signer.WithPrompt(a.prompt),
	)
	if err != nil {
		return err
	}
	if len(signers) == 0 {
		return errors.NewEnvironmentError(name, "no accounts configured", errors.ErrNoSigner)
	}

	w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tADDRESS\tSOURCE")
	for i, s := range signers {
		marker := ""
		if i == cfg.Deploy.AccountIndex {
			marker = " (deployer)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s%s\n", i, s.Address().Hex(), s.Source(), marker)
	}
	return w.Flush()
}
