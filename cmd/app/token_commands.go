package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cardvault/cmd/app/commands"
	"github.com/allisson/cardvault/internal/app"
	"github.com/allisson/cardvault/internal/config"
)

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-token",
			Usage: "Issue a disclosure token for a card",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "card-id",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Card identifier the token is scoped to",
				},
				&cli.IntFlag{
					Name:    "ttl",
					Aliases: []string{"t"},
					Value:   0,
					Usage:   "Token time-to-live in seconds (0 uses the configured default)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := newContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				authority, err := container.TokenAuthority()
				if err != nil {
					return fmt.Errorf("failed to initialize token authority: %w", err)
				}

				return commands.RunIssueToken(
					ctx,
					authority,
					container.Config(),
					container.Logger(),
					cmd.String("card-id"),
					cmd.Int("ttl"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "validate-token",
			Usage: "Validate a disclosure token against a card",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Required: true,
					Usage:    "Token transport string to validate",
				},
				&cli.StringFlag{
					Name:     "card-id",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Card identifier the disclosure targets",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := newContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				authority, err := container.TokenAuthority()
				if err != nil {
					return fmt.Errorf("failed to initialize token authority: %w", err)
				}

				return commands.RunValidateToken(
					ctx,
					authority,
					container.Logger(),
					cmd.String("token"),
					cmd.String("card-id"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}

func newContainer() *app.Container {
	return app.NewContainer(config.Load())
}
