package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/entrhq/graphite/pkg/browser"
)

// Command is a slash command typed at the prompt.
type Command struct {
	Name string
	Arg  string
}

// ShouldIntercept reports whether input is a slash command rather than an
// address or a search.
func ShouldIntercept(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// Parse splits a slash command into its name and argument.
func Parse(input string) (*Command, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil, false
	}
	name, arg, _ := strings.Cut(input[1:], " ")
	return &Command{Name: strings.ToLower(name), Arg: strings.TrimSpace(arg)}, true
}

var commandHelp = []struct{ usage, desc string }{
	{"<address or search>", "Load an address or search for the text"},
	{"/open <input>", "Load input even when it starts with a slash"},
	{"/tabs", "List open tabs"},
	{"/new", "Open a new tab"},
	{"/tab <n>", "Switch to tab n"},
	{"/close [n]", "Close tab n (default: current)"},
	{"/move <n> <m>", "Move tab n to position m"},
	{"/back, /forward", "Move through the tab's history"},
	{"/reload", "Reload the current page"},
	{"/home", "Return to the landing page"},
	{"/engine [name]", "Show or change the search engine"},
	{"/proxy [server|off]", "Show or change the proxy server"},
	{"/downloads", "List downloads"},
	{"/delete <n>", "Delete download n"},
	{"/reveal <n>", "Show download n in the file manager"},
	{"/help", "Show this help"},
	{"/quit", "Leave graphite"},
}

// execute runs cmd. It reports whether the session should end.
func (e *Executor) execute(ctx context.Context, cmd *Command) (bool, error) {
	switch cmd.Name {
	case "help", "?":
		e.printHelp()

	case "quit", "exit":
		return true, nil

	case "open":
		if cmd.Arg == "" {
			return false, fmt.Errorf("usage: /open <input>")
		}
		e.dispatch(ctx, browser.NavigateMsg{Input: cmd.Arg})

	case "tabs":
		e.printTabs()

	case "new":
		e.dispatch(ctx, browser.NewTabMsg{})

	case "tab":
		tab, err := e.tabArg(cmd.Arg)
		if err != nil {
			return false, err
		}
		e.dispatch(ctx, browser.SelectTabMsg{ID: tab.ID})

	case "close":
		if len(e.shell.State().Tabs) == 1 {
			return false, fmt.Errorf("the last tab cannot be closed")
		}
		tab, err := e.tabArg(cmd.Arg)
		if err != nil {
			return false, err
		}
		e.dispatch(ctx, browser.CloseTabMsg{ID: tab.ID})

	case "move":
		from, to, ok := strings.Cut(cmd.Arg, " ")
		if !ok {
			return false, fmt.Errorf("usage: /move <n> <m>")
		}
		dragged, err := e.tabArg(from)
		if err != nil {
			return false, err
		}
		target, err := e.tabArg(strings.TrimSpace(to))
		if err != nil {
			return false, err
		}
		e.shell.Dispatch(browser.DragStartMsg{ID: dragged.ID})
		e.shell.Dispatch(browser.DragOverMsg{ID: target.ID})
		e.shell.Dispatch(browser.DragEndMsg{})
		e.printTabs()

	case "back":
		e.dispatch(ctx, browser.GoBackMsg{})

	case "forward":
		e.dispatch(ctx, browser.GoForwardMsg{})

	case "reload":
		e.dispatch(ctx, browser.ReloadMsg{})

	case "home":
		e.dispatch(ctx, browser.GoHomeMsg{})

	case "engine":
		if cmd.Arg == "" {
			e.printEngines()
			return false, nil
		}
		engine, err := browser.ParseSearchEngine(cmd.Arg)
		if err != nil {
			return false, err
		}
		e.shell.Dispatch(browser.SetSearchEngineMsg{Engine: engine})
		fmt.Fprintf(e.writer, "Searching with %s\n", engine)

	case "proxy":
		switch cmd.Arg {
		case "":
			if proxy := e.shell.State().ProxyServer; proxy != "" {
				fmt.Fprintf(e.writer, "Proxy server: %s\n", proxy)
			} else {
				fmt.Fprintln(e.writer, "No proxy server")
			}
		case "off":
			e.shell.Dispatch(browser.SetProxyServerMsg{Server: ""})
			fmt.Fprintln(e.writer, "Proxy server disabled")
		default:
			e.shell.Dispatch(browser.SetProxyServerMsg{Server: cmd.Arg})
			fmt.Fprintf(e.writer, "Proxy server: %s\n", cmd.Arg)
		}

	case "downloads":
		e.printDownloads()

	case "delete":
		d, err := e.downloadArg(cmd.Arg)
		if err != nil {
			return false, err
		}
		e.shell.Dispatch(browser.DeleteDownloadMsg{ID: d.ID})
		fmt.Fprintf(e.writer, "Deleted %s\n", d.Filename)

	case "reveal":
		d, err := e.downloadArg(cmd.Arg)
		if err != nil {
			return false, err
		}
		e.runEffects(ctx, e.shell.Dispatch(browser.OpenDownloadFolderMsg{ID: d.ID}).Effects)

	default:
		return false, fmt.Errorf("unknown command: /%s (type /help for a list)", cmd.Name)
	}
	return false, nil
}

// tabArg looks up a tab by its 1-based position. An empty argument means
// the active tab.
func (e *Executor) tabArg(arg string) (browser.Tab, error) {
	state := e.shell.State()
	if arg == "" {
		tab, _ := state.ActiveTab()
		return tab, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(state.Tabs) {
		return browser.Tab{}, fmt.Errorf("no tab %q (there are %d)", arg, len(state.Tabs))
	}
	return state.Tabs[n-1], nil
}

func (e *Executor) downloadArg(arg string) (browser.Download, error) {
	downloads := e.shell.State().Downloads
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(downloads) {
		return browser.Download{}, fmt.Errorf("no download %q (there are %d)", arg, len(downloads))
	}
	return downloads[n-1], nil
}
