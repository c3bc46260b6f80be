package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/entrhq/graphite/pkg/browser"
	"github.com/entrhq/graphite/pkg/config"
	"github.com/entrhq/graphite/pkg/persist"
)

func newStateCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or reset the saved browser state",
	}

	var color string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the saved state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			highlight, err := useColor(color, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return withStore(cmd, flags, func(kv persist.KV) error {
				data, ok, err := kv.Get(browser.StateKey)
				if err != nil {
					return fmt.Errorf("failed to read state: %w", err)
				}
				if !ok {
					fmt.Fprintln(cmd.ErrOrStderr(), "No saved state; showing defaults.")
					if data, err = persist.EncodeState(browser.DefaultState()); err != nil {
						return err
					}
				} else if _, err := persist.DecodeState(data); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Saved state is unusable and will be replaced by defaults: %v\n", err)
				}

				var out bytes.Buffer
				if err := json.Indent(&out, data, "", "  "); err != nil {
					return fmt.Errorf("saved state is not JSON: %w", err)
				}
				out.WriteByte('\n')
				if highlight {
					return quick.Highlight(cmd.OutOrStdout(), out.String(), "json", "terminal256", "monokai")
				}
				_, err = out.WriteTo(cmd.OutOrStdout())
				return err
			})
		},
	}
	show.Flags().StringVar(&color, "color", "auto", "highlight the JSON: auto, always or never")
	cmd.AddCommand(show)

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Replace the saved state with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, flags, func(kv persist.KV) error {
				data, err := persist.EncodeState(browser.DefaultState())
				if err != nil {
					return err
				}
				if err := kv.Set(browser.StateKey, data); err != nil {
					return fmt.Errorf("failed to reset state: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "State reset.")
				return nil
			})
		},
	})

	return cmd
}

// useColor decides whether output written to w is highlighted.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		return ok && isatty.IsTerminal(f.Fd()) && os.Getenv("NO_COLOR") == "", nil
	}
	return false, fmt.Errorf("invalid --color value %q: must be auto, always or never", mode)
}

// withStore runs fn against the configured store and closes it afterwards.
func withStore(cmd *cobra.Command, flags *rootFlags, fn func(persist.KV) error) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	if cfg.Storage.Backend == config.StorageMemory {
		return fmt.Errorf("the memory backend keeps no state between runs")
	}

	kv, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()
	return fn(kv)
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(flags)
			if err != nil {
				return err
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(flags)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return cmd
}

func configPath(flags *rootFlags) (string, error) {
	if flags.configPath != "" {
		return flags.configPath, nil
	}
	return config.DefaultPath()
}
