package browser

// Msg is a user intent. The set of messages is closed: only the types in
// this file implement it.
type Msg interface {
	msg()
}

// NewTabMsg opens a home tab and makes it active.
type NewTabMsg struct{}

// CloseTabMsg closes a tab.
type CloseTabMsg struct{ ID uint32 }

// SelectTabMsg activates a tab.
type SelectTabMsg struct{ ID uint32 }

// NavigateMsg resolves Input and loads it in the active tab.
type NavigateMsg struct{ Input string }

// GoBackMsg asks the content viewer to go back in its own history.
type GoBackMsg struct{}

// GoForwardMsg asks the content viewer to go forward in its own history.
type GoForwardMsg struct{}

// ReloadMsg reloads the active tab.
type ReloadMsg struct{}

// GoHomeMsg returns the active tab to the landing page.
type GoHomeMsg struct{}

// UpdateURLBarMsg carries the URL-bar text as the user types.
type UpdateURLBarMsg struct{ Text string }

// SetSearchEngineMsg changes the search provider.
type SetSearchEngineMsg struct{ Engine SearchEngine }

// SetProxyServerMsg changes the proxy server. An empty string disables it.
type SetProxyServerMsg struct{ Server string }

// ToggleSettingsPanelMsg flips the settings panel.
type ToggleSettingsPanelMsg struct{}

// ToggleDownloadsPanelMsg flips the downloads panel.
type ToggleDownloadsPanelMsg struct{}

// DeleteDownloadMsg removes a download record.
type DeleteDownloadMsg struct{ ID uint32 }

// OpenDownloadFolderMsg asks the host to reveal a download on disk.
type OpenDownloadFolderMsg struct{ ID uint32 }

// DragStartMsg starts dragging a tab.
type DragStartMsg struct{ ID uint32 }

// DragOverMsg reports the dragged tab hovering over another tab.
type DragOverMsg struct{ ID uint32 }

// DragEndMsg finishes a drag.
type DragEndMsg struct{}

// CloseAllPanelsMsg hides every panel (background click).
type CloseAllPanelsMsg struct{}

// NoOpMsg is input the shell ignores, such as a non-Enter key press in the
// URL bar. It is the only message that does not request a redraw.
type NoOpMsg struct{}

func (NewTabMsg) msg()               {}
func (CloseTabMsg) msg()             {}
func (SelectTabMsg) msg()            {}
func (NavigateMsg) msg()             {}
func (GoBackMsg) msg()               {}
func (GoForwardMsg) msg()            {}
func (ReloadMsg) msg()               {}
func (GoHomeMsg) msg()               {}
func (UpdateURLBarMsg) msg()         {}
func (SetSearchEngineMsg) msg()      {}
func (SetProxyServerMsg) msg()       {}
func (ToggleSettingsPanelMsg) msg()  {}
func (ToggleDownloadsPanelMsg) msg() {}
func (DeleteDownloadMsg) msg()       {}
func (OpenDownloadFolderMsg) msg()   {}
func (DragStartMsg) msg()            {}
func (DragOverMsg) msg()             {}
func (DragEndMsg) msg()              {}
func (CloseAllPanelsMsg) msg()       {}
func (NoOpMsg) msg()                 {}
