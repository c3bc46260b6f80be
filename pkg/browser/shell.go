package browser

// Store loads and saves the persisted state.
//
// Load never fails: implementations fall back to DefaultState when nothing
// usable is stored. Save is best effort and must not report failures to the
// caller; the in-memory state stays authoritative either way.
type Store interface {
	Load() State
	Save(State)
}

// Shell owns the browser state and is the single consumer of messages.
// Messages are processed one at a time; Shell is not safe for concurrent use
// and does not need to be, since the view layer's event loop is its only
// caller.
type Shell struct {
	state   State
	session Session
	store   Store
}

// NewShell loads the persisted state from store and derives a fresh session.
func NewShell(store Store) *Shell {
	state := store.Load()
	return &Shell{
		state:   state,
		session: NewSession(state),
		store:   store,
	}
}

// Dispatch reduces msg against the current state, saves the result when it
// must persist, and returns the transition so the caller can redraw and run
// effects.
func (s *Shell) Dispatch(msg Msg) Transition {
	t := Reduce(s.state, s.session, msg)
	s.state = t.State
	s.session = t.Session
	if t.Persist {
		s.store.Save(s.state.Clone())
	}
	return t
}

// State returns a copy of the current state.
func (s *Shell) State() State {
	return s.state.Clone()
}

// Session returns the current UI state.
func (s *Shell) Session() Session {
	return s.session
}

// ActiveTab returns the active tab.
func (s *Shell) ActiveTab() Tab {
	tab, _ := s.state.ActiveTab()
	return tab
}
