package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/entrhq/graphite/pkg/browser"
	"github.com/entrhq/graphite/pkg/viewer"
)

func newResolveCmd(flags *rootFlags) *cobra.Command {
	var engineName, proxy string

	cmd := &cobra.Command{
		Use:   "resolve <input>...",
		Short: "Print the URL the URL bar would navigate to",
		Long: `Resolve turns URL bar input into the address a tab navigates to.

Addresses with a scheme are kept, single words containing a dot become
https:// addresses and anything else is searched for with the selected
engine. With --proxy, the address the viewer would load is printed as well.`,
		Example: `  graphite resolve example.com
  graphite resolve --engine duckduckgo golang generics
  graphite resolve --proxy https://proxy.example/ example.com`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			engine := browser.DefaultSearchEngine
			if engineName != "" {
				if engine, err = browser.ParseSearchEngine(engineName); err != nil {
					return err
				}
			}

			url := browser.Resolve(strings.Join(args, " "), engine)
			fmt.Fprintln(cmd.OutOrStdout(), url)

			if proxy != "" && !browser.IsInternal(url) {
				router, err := viewer.NewRouter(cfg.Viewer.ProxyBypass)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), router.Target(proxy, url))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&engineName, "engine", "e", "", "search engine (default Google)")
	cmd.Flags().StringVar(&proxy, "proxy", "", "proxy server prefix to route the address through")
	return cmd
}

func newEnginesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List the supported search engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSEARCH PREFIX\tICON")
			for _, e := range browser.SearchEngines() {
				name := e.String()
				if e == browser.DefaultSearchEngine {
					name += " (default)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, e.SearchURL(""), e.Icon())
			}
			return w.Flush()
		},
	}
}
