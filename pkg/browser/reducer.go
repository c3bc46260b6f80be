package browser

// Transition is the outcome of reducing one message.
type Transition struct {
	State   State
	Session Session

	// Redraw is false only for input the shell ignores.
	Redraw bool

	// Persist is set when State changed in a way that must survive a
	// restart. Ephemeral changes (URL-bar text, panels, live drag
	// reordering, loading flags) do not persist.
	Persist bool

	Effects []Effect
}

// Reduce applies msg to a copy of state and session and returns the result.
// The inputs are never modified.
//
//nolint:gocyclo
func Reduce(state State, session Session, msg Msg) Transition {
	t := Transition{
		State:   state.Clone(),
		Session: session,
		Redraw:  true,
	}
	st := &t.State
	ui := &t.Session

	switch msg := msg.(type) {
	case NewTabMsg:
		st.NewTab()
		ui.URLBar = ""
		t.Persist = true

	case CloseTabMsg:
		prevActive := st.ActiveTabID
		if !st.CloseTab(msg.ID) {
			break
		}
		t.Persist = true
		t.Effects = append(t.Effects, DiscardEffect{TabID: msg.ID})
		if st.ActiveTabID != prevActive {
			t.syncActive()
		}

	case SelectTabMsg:
		if !st.SelectTab(msg.ID) {
			break
		}
		t.Persist = true
		t.syncActive()

	case NavigateMsg:
		url, ok := st.Navigate(st.ActiveTabID, msg.Input)
		if !ok {
			break
		}
		t.Persist = true
		if url == HomeURL {
			ui.URLBar = ""
			t.Effects = append(t.Effects, DiscardEffect{TabID: st.ActiveTabID})
			break
		}
		ui.URLBar = url
		t.Effects = append(t.Effects, LoadEffect{
			TabID: st.ActiveTabID,
			URL:   url,
			Proxy: st.ProxyServer,
			Force: true,
		})

	case GoBackMsg:
		t.history(Back)

	case GoForwardMsg:
		t.history(Forward)

	case ReloadMsg:
		// The landing page has no loading flag to set and nothing for the
		// viewer to fetch, so reloading it changes nothing.
		if !st.Reload(st.ActiveTabID) {
			break
		}
		tab, _ := st.ActiveTab()
		t.Effects = append(t.Effects, LoadEffect{
			TabID: tab.ID,
			URL:   tab.URL(),
			Proxy: st.ProxyServer,
			Force: true,
		})

	case GoHomeMsg:
		if !st.GoHome(st.ActiveTabID) {
			break
		}
		ui.URLBar = ""
		t.Persist = true
		t.Effects = append(t.Effects, DiscardEffect{TabID: st.ActiveTabID})

	case UpdateURLBarMsg:
		ui.URLBar = msg.Text

	case SetSearchEngineMsg:
		if !msg.Engine.Valid() {
			break
		}
		st.SearchEngine = msg.Engine
		t.Persist = true

	case SetProxyServerMsg:
		st.ProxyServer = msg.Server
		t.Persist = true

	case ToggleSettingsPanelMsg:
		ui.Panels.ToggleSettings()

	case ToggleDownloadsPanelMsg:
		ui.Panels.ToggleDownloads()

	case DeleteDownloadMsg:
		t.Persist = st.DeleteDownload(msg.ID)

	case OpenDownloadFolderMsg:
		for _, d := range st.Downloads {
			if d.ID == msg.ID {
				t.Effects = append(t.Effects, OpenFolderEffect{DownloadID: d.ID, Filename: d.Filename})
				break
			}
		}

	case DragStartMsg:
		if st.TabIndex(msg.ID) >= 0 {
			ui.startDrag(msg.ID)
		}

	case DragOverMsg:
		// Reorder live while hovering; the final order is persisted on DragEnd.
		if dragID, ok := ui.Dragging(); ok {
			st.Reorder(dragID, msg.ID)
		}

	case DragEndMsg:
		ui.endDrag()
		t.Persist = true

	case CloseAllPanelsMsg:
		ui.Panels.CloseAll()

	default:
		// NoOpMsg and anything unrecognised.
		t.Redraw = false
	}

	return t
}

// syncActive points the URL bar at the active tab and, for loaded tabs,
// asks the viewer to show it again.
func (t *Transition) syncActive() {
	tab, ok := t.State.ActiveTab()
	if !ok {
		return
	}
	t.Session.URLBar = DisplayURL(tab)
	if tab.IsHome() {
		return
	}
	t.Effects = append(t.Effects, LoadEffect{
		TabID: tab.ID,
		URL:   tab.URL(),
		Proxy: t.State.ProxyServer,
	})
}

func (t *Transition) history(dir Direction) {
	tab, ok := t.State.ActiveTab()
	if !ok || tab.IsHome() {
		return
	}
	t.Effects = append(t.Effects, HistoryEffect{TabID: tab.ID, Direction: dir})
}
