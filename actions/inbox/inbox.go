package inbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/config"
	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/platform/mailtm"
	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/storage"
	"github.com/PiotrWarzachowski/go-tempmail-cli/providers"
)

// FetchCodeCommand prints exactly one line: the code, the message body when
// no code is found, or nothing when no recent message exists.
var FetchCodeCommand = &cli.Command{
	Name:      "fetch-code",
	Aliases:   []string{"inbox", "code"},
	Usage:     "Print the verification code from the newest recent message",
	ArgsUsage: "<email>",
	Flags: []cli.Flag{
		&cli.DurationFlag{
			Name:    "max-age",
			Aliases: []string{"m"},
			Usage:   "Ignore messages older than this",
			Value:   providers.DefaultMaxAge,
		},
		&cli.DurationFlag{
			Name:    "wait",
			Aliases: []string{"w"},
			Usage:   "Keep polling this long for a recent message (0 checks once)",
		},
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "Delay between polls when --wait is set",
			Value: providers.DefaultPollInterval,
		},
	},
	Action: fetchCodeAction,
}

func fetchCodeAction(ctx context.Context, cmd *cli.Command) error {
	address := strings.TrimSpace(cmd.Args().First())
	if address == "" {
		return fmt.Errorf("usage: %s fetch-code <email>", cmd.Root().Name)
	}

	cfg, err := config.FromCommand(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	maxAge := cfg.MaxAge
	if cmd.IsSet("max-age") {
		maxAge = cmd.Duration("max-age")
	}

	client := mailtm.NewClient(cfg.BaseURL, cfg.Timeout)
	inbox := providers.NewInboxProvider(client, storage.NewFileStore(cfg.Store))

	var (
		result providers.CodeResult
		wait   = cmd.Duration("wait")
	)
	if wait > 0 {
		reporter := reporterFor(cmd)
		if reporter != nil {
			result, err = inbox.WaitForCode(ctx, address, maxAge, wait, cmd.Duration("interval"), reporter)
			reporter.Wait()
		} else {
			result, err = inbox.WaitForCode(ctx, address, maxAge, wait, cmd.Duration("interval"), nil)
		}
	} else {
		result, err = inbox.FetchCode(ctx, address, maxAge)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, result.String())
	return nil
}
