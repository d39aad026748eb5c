package config

import (
	"github.com/urfave/cli/v3"

	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/logging"
)

// GlobalFlags returns the flags registered on the root command. Subcommands
// see them too.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the YAML config file",
			Value:   DefaultPath(),
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "Path to the accounts JSON document (default: next to the executable)",
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "Mail provider API base URL",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request HTTP timeout",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Enable debug output on stderr",
		},
	}
}

// FromCommand loads the config file named by --config and applies any
// global flags the user set explicitly.
func FromCommand(cmd *cli.Command) (*Config, error) {
	cfg, err := Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("store") {
		cfg.Store = cmd.String("store")
	}
	if cmd.IsSet("base-url") {
		cfg.BaseURL = cmd.String("base-url")
	}
	if cmd.IsSet("timeout") {
		cfg.Timeout = cmd.Duration("timeout")
	}
	if cmd.IsSet("debug") {
		cfg.Debug = cmd.Bool("debug")
	}

	logging.SetDebug(cfg.Debug)
	logging.Debugf("config: base_url=%s store=%s timeout=%s", cfg.BaseURL, cfg.Store, cfg.Timeout)

	return cfg, nil
}
