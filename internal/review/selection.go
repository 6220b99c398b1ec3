package review

import "sync"

// Guard tracks which items have a mutating call in flight. The flag is
// scoped per item id: actions on different items never gate each other.
type Guard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{busy: make(map[string]struct{})}
}

// Begin marks an action in flight for the item. It returns false when
// one is already running, which is how double submits are swallowed.
func (g *Guard) Begin(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, running := g.busy[id]; running {
		return false
	}
	g.busy[id] = struct{}{}
	return true
}

func (g *Guard) End(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.busy, id)
}

func (g *Guard) Busy(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, running := g.busy[id]
	return running
}

// Selection is the operator-side state of a review queue: which item is
// picked, the draft comment for it, and which items have an action in
// flight. The selected item itself is never copied out of the list; hold
// the id and look the item up in the freshest snapshot so a refresh can
// never leave a stale copy on screen.
type Selection struct {
	*Guard
	mu         sync.Mutex
	selectedID string
	comment    string
}

func NewSelection() *Selection {
	return &Selection{Guard: NewGuard()}
}

// Select switches to another item. Switching discards the draft comment:
// comments are ephemeral until submitted, there is no per-item draft
// persistence.
func (s *Selection) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.selectedID {
		s.comment = ""
	}
	s.selectedID = id
}

func (s *Selection) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

func (s *Selection) SetComment(comment string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comment = comment
}

func (s *Selection) Comment() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comment
}

// ClearComment is called after a confirmed action; on failure the
// comment stays so the operator does not retype it.
func (s *Selection) ClearComment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comment = ""
}
