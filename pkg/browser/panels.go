package browser

// Panel identifies an auxiliary overlay.
type Panel int

const (
	// PanelNone means no overlay is open
	PanelNone Panel = iota
	// PanelSettings is the search engine / proxy panel
	PanelSettings
	// PanelDownloads is the downloads list
	PanelDownloads
)

func (p Panel) String() string {
	switch p {
	case PanelSettings:
		return "settings"
	case PanelDownloads:
		return "downloads"
	default:
		return "none"
	}
}

// Panels tracks which overlay is open. At most one is open at any time;
// opening one closes the other.
type Panels struct {
	open Panel
}

// Open returns the currently open panel.
func (p Panels) Open() Panel {
	return p.open
}

// SettingsOpen reports whether the settings panel is visible.
func (p Panels) SettingsOpen() bool { return p.open == PanelSettings }

// DownloadsOpen reports whether the downloads panel is visible.
func (p Panels) DownloadsOpen() bool { return p.open == PanelDownloads }

// ToggleSettings flips the settings panel and closes the downloads panel.
func (p *Panels) ToggleSettings() {
	p.toggle(PanelSettings)
}

// ToggleDownloads flips the downloads panel and closes the settings panel.
func (p *Panels) ToggleDownloads() {
	p.toggle(PanelDownloads)
}

// CloseAll hides every panel, as a click outside of them does.
func (p *Panels) CloseAll() {
	p.open = PanelNone
}

func (p *Panels) toggle(target Panel) {
	if p.open == target {
		p.open = PanelNone
		return
	}
	p.open = target
}
