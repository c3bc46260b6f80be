package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/entrhq/graphite/pkg/browser"
	"github.com/entrhq/graphite/pkg/executor/cli"
	"github.com/entrhq/graphite/pkg/executor/tui"
)

func newShellCmd(flags *rootFlags) *cobra.Command {
	var pageLines int

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Browse from a line-mode prompt instead of the full-screen UI",
		Long: `Shell reads one address, search or slash command per line and prints
the active tab after each one. It shares its saved state with the
full-screen UI. Type /help at the prompt for the list of commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runBrowser(cmd.Context(), cfg, func(ctx context.Context, shell *browser.Shell, h host) error {
				return cli.NewExecutor(shell,
					cli.WithViewer(h.viewer),
					cli.WithRouter(h.router),
					cli.WithLogger(h.logger.With("cli")),
					cli.WithReader(cmd.InOrStdin()),
					cli.WithWriter(cmd.OutOrStdout()),
					cli.WithDownloadsDir(h.downloadsDir),
					cli.WithOpenFolder(tui.RevealInFileManager),
					cli.WithLoadTimeout(cfg.Viewer.Timeout),
					cli.WithPageLines(pageLines),
				).Run(ctx)
			})
		},
	}

	cmd.Flags().IntVarP(&pageLines, "lines", "n", 20, "lines of page text to print (0 prints everything)")
	return cmd
}
