package browser

// Session is the ephemeral UI state owned by the view layer. It is reset on
// restart and never persisted.
type Session struct {
	URLBar string
	Panels Panels

	dragging   uint32
	isDragging bool
}

// NewSession derives the initial UI state for a loaded state.
func NewSession(s State) Session {
	var sess Session
	if tab, ok := s.ActiveTab(); ok {
		sess.URLBar = DisplayURL(tab)
	}
	return sess
}

// Dragging returns the id of the tab being dragged, if any.
func (s Session) Dragging() (uint32, bool) {
	return s.dragging, s.isDragging
}

func (s *Session) startDrag(id uint32) {
	s.dragging = id
	s.isDragging = true
}

func (s *Session) endDrag() {
	s.dragging = 0
	s.isDragging = false
}
