package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/entrhq/graphite/pkg/browser"
	"github.com/entrhq/graphite/pkg/config"
	"github.com/entrhq/graphite/pkg/executor/tui"
	"github.com/entrhq/graphite/pkg/logging"
	"github.com/entrhq/graphite/pkg/persist"
	"github.com/entrhq/graphite/pkg/viewer"
)

// rootFlags are the flags shared by every command. Flags left unset keep
// the value from the config file.
type rootFlags struct {
	configPath string
	storage    string
	statePath  string
	viewer     string
	headless   bool
	showHelp   bool
}

// newRootCmd builds the command tree, parsing flags into flags.
func newRootCmd(flags *rootFlags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "graphite",
		Short: "Graphite - a tabbed browser for the terminal",
		Long: `Graphite is a tabbed web browser for the terminal.

Type an address or a search into the URL bar and press Enter. Tabs, the
selected search engine and the proxy server are restored on the next start.
Set viewer.backend to playwright in the config file to render pages with a
headless Chromium; otherwise tabs show their address only.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runBrowser(cmd.Context(), cfg, func(ctx context.Context, shell *browser.Shell, h host) error {
				return tui.NewExecutor(shell, tui.Options{
					Viewer:       h.viewer,
					Router:       h.router,
					Logger:       h.logger.With("tui"),
					ShowHelp:     cfg.UI.ShowHelp,
					DownloadsDir: h.downloadsDir,
					LoadTimeout:  cfg.Viewer.Timeout,
				}).Run(ctx)
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.graphite/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.storage, "storage", "", "state storage backend: file, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&flags.statePath, "state-path", "", "state file or database path")

	rootCmd.PersistentFlags().StringVar(&flags.viewer, "viewer", "", "page viewer: none or playwright")
	rootCmd.PersistentFlags().BoolVar(&flags.headless, "headless", true, "run Chromium without a window (playwright viewer)")
	rootCmd.Flags().BoolVar(&flags.showHelp, "show-help", true, "show the key help line")

	rootCmd.AddCommand(newShellCmd(flags))
	rootCmd.AddCommand(newResolveCmd(flags))
	rootCmd.AddCommand(newEnginesCmd())
	rootCmd.AddCommand(newStateCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))

	return rootCmd
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	path, err := configPath(flags)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("storage") {
		cfg.Storage.Backend = flags.storage
	}
	if changed("state-path") {
		cfg.Storage.Path = flags.statePath
	}
	if changed("viewer") {
		cfg.Viewer.Backend = flags.viewer
	}
	if changed("headless") {
		cfg.Viewer.Headless = flags.headless
	}
	if changed("show-help") {
		cfg.UI.ShowHelp = flags.showHelp
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// openStore opens the configured key-value store.
func openStore(cfg *config.Config) (persist.KV, error) {
	backend, err := persist.ParseBackend(cfg.Storage.Backend)
	if err != nil {
		return nil, err
	}
	path, err := cfg.StatePath()
	if err != nil {
		return nil, err
	}
	kv, err := persist.Open(backend, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s state store: %w", backend, err)
	}
	return kv, nil
}

// newViewer creates the configured page viewer.
func newViewer(cfg *config.Config, logger *logging.Logger) viewer.Viewer {
	if cfg.Viewer.Backend != config.ViewerPlaywright {
		return viewer.NewNop()
	}
	return viewer.NewPlaywrightViewer(viewer.PlaywrightOptions{
		Headless:    cfg.Viewer.Headless,
		Timeout:     cfg.Viewer.Timeout,
		WaitUntil:   cfg.Viewer.WaitUntil,
		MaxPreview:  cfg.Viewer.MaxPreview,
		MaxPages:    cfg.Viewer.MaxPages,
		IdleTimeout: cfg.Viewer.IdleTimeout,
	}, logger.With("viewer"))
}

// host carries what a front end needs besides the shell.
type host struct {
	viewer       viewer.Viewer
	router       *viewer.Router
	logger       *logging.Logger
	downloadsDir string
}

// runBrowser wires the shell, its store and the viewer, then hands them to
// frontend until it returns.
func runBrowser(ctx context.Context, cfg *config.Config, frontend func(context.Context, *browser.Shell, host) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Logging.Dir != "" {
		logging.SetLogDirectory(cfg.Logging.Dir)
	}
	logger, err := logging.NewLogger("graphite")
	if err != nil {
		// Front ends own the terminal, so never fall back to stderr.
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logger = logging.NewNopLogger("graphite")
	}
	defer logger.Close()
	logger.Infof("Starting graphite v%s", version)

	kv, err := openStore(cfg)
	if err != nil {
		return err
	}
	store := persist.NewAdapter(kv, logger.With("persist"))
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warnf("Closing state store: %v", err)
		}
	}()

	router, err := viewer.NewRouter(cfg.Viewer.ProxyBypass)
	if err != nil {
		return err
	}

	downloadsDir, err := cfg.DownloadsDir()
	if err != nil {
		return err
	}

	return frontend(ctx, browser.NewShell(store), host{
		viewer:       newViewer(cfg, logger),
		router:       router,
		logger:       logger,
		downloadsDir: downloadsDir,
	})
}
