package browser

// Effect is work the reducer asks the host to perform outside of the state
// machine, typically against the content viewer.
type Effect interface {
	effect()
}

// LoadEffect asks the viewer to show URL in the tab's frame. URL is the
// resolved address; the host applies Proxy with ProxiedURL. Force is set for
// explicit navigations and reloads; otherwise the viewer may reuse a page it
// already holds for the tab.
type LoadEffect struct {
	TabID uint32
	URL   string
	Proxy string
	Force bool
}

// Direction is a history traversal direction.
type Direction int

const (
	Back Direction = iota
	Forward
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "back"
}

// HistoryEffect delegates back/forward navigation to the viewer's own
// history. The shell keeps no history of its own.
type HistoryEffect struct {
	TabID     uint32
	Direction Direction
}

// DiscardEffect tells the viewer a tab's frame is no longer needed, either
// because the tab was closed or because it went back to the landing page.
type DiscardEffect struct {
	TabID uint32
}

// OpenFolderEffect asks the host to reveal a download on disk.
type OpenFolderEffect struct {
	DownloadID uint32
	Filename   string
}

func (LoadEffect) effect()       {}
func (HistoryEffect) effect()    {}
func (DiscardEffect) effect()    {}
func (OpenFolderEffect) effect() {}
