package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"github.com/PiotrWarzachowski/go-tempmail-cli/actions/accounts"
	"github.com/PiotrWarzachowski/go-tempmail-cli/actions/inbox"
	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/config"
	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/logging"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "go-tempmail-cli",
		Usage:   "Disposable mailboxes with verification code extraction",
		Version: "0.1.0",
		Flags:   config.GlobalFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			fmt.Fprintln(cmd.Writer, "Temp mail CLI - Use 'go-tempmail-cli help' for available commands")
			return nil
		},
		Commands: []*cli.Command{
			accounts.CreateCommand,
			accounts.ListCommand,
			accounts.CheckCommand,
			inbox.FetchCodeCommand,
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		logging.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}
