package accounts

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/config"
	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/platform/mailtm"
	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/storage"
	"github.com/PiotrWarzachowski/go-tempmail-cli/providers"
)

const noAccountsMessage = "No saved emails yet."

// CreateCommand provisions a new mailbox and prints its address and password.
var CreateCommand = &cli.Command{
	Name:    "create",
	Aliases: []string{"new"},
	Usage:   "Create a new temporary mailbox and save it",
	Action:  createAction,
}

var ListCommand = &cli.Command{
	Name:    "list",
	Aliases: []string{"ls"},
	Usage:   "Show saved mailboxes and their passwords",
	Action:  listAction,
}

var CheckCommand = &cli.Command{
	Name:   "check",
	Usage:  "Verify that every saved mailbox can still log in",
	Action: checkAction,
}

func newAccountProvider(cmd *cli.Command) (*providers.AccountProvider, error) {
	cfg, err := config.FromCommand(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client := mailtm.NewClient(cfg.BaseURL, cfg.Timeout)
	return providers.NewAccountProvider(client, storage.NewFileStore(cfg.Store)), nil
}

func createAction(ctx context.Context, cmd *cli.Command) error {
	provider, err := newAccountProvider(cmd)
	if err != nil {
		return err
	}

	acc, err := provider.Create(ctx)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	fmt.Fprintln(w, acc.Address)
	fmt.Fprintln(w, acc.Password)
	return nil
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	provider, err := newAccountProvider(cmd)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	accounts := provider.List()
	if len(accounts) == 0 {
		fmt.Fprintln(w, noAccountsMessage)
		return nil
	}

	for _, acc := range accounts {
		fmt.Fprintf(w, "%s\n%s\n\n", acc.Address, acc.Password)
	}
	return nil
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	provider, err := newAccountProvider(cmd)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	results := provider.Check(ctx)
	if len(results) == 0 {
		fmt.Fprintln(w, noAccountsMessage)
		return nil
	}

	failed := 0
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(w, "%s\tok\n", r.Address)
			continue
		}
		failed++
		fmt.Fprintf(w, "%s\terror: %v\n", r.Address, r.Err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d mailboxes failed to log in", failed, len(results))
	}
	return nil
}
