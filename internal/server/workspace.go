package server

import (
	"sync"

	"github.com/matzehuels/pagecraft/pkg/editor"
)

// workspace is one user's editor state.
type workspace struct {
	mu     sync.Mutex
	doc    *editor.Document
	engine *editor.Engine
	ctrl   *editor.Controller
}

func newWorkspace() *workspace {
	doc := editor.NewDefault()
	return &workspace{
		doc:    doc,
		engine: editor.NewEngine(doc),
		ctrl:   editor.NewController(doc),
	}
}

// state is the JSON view of a workspace returned by every editor route.
type state struct {
	Elements []editor.Element `json:"elements"`
	Selected *string          `json:"selected"`
	Guide    editor.Guide     `json:"guide"`
	Mode     string           `json:"mode"`
}

// do runs fn with the workspace locked and returns the resulting state.
func (w *workspace) do(fn func(w *workspace) error) (state, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if fn != nil {
		if err := fn(w); err != nil {
			return state{}, err
		}
	}
	return w.state(), nil
}

// snapshot copies the document under the lock.
func (w *workspace) snapshot() editor.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doc.Snapshot()
}

func (w *workspace) state() state {
	s := state{
		Elements: w.doc.Elements(),
		Guide:    w.engine.Guide(),
		Mode:     w.engine.Session().Mode.String(),
	}
	if id, ok := w.doc.Selected(); ok {
		s.Selected = &id
	}
	return s
}

// registry maps user ids to workspaces.
type registry struct {
	mu     sync.RWMutex
	byUser map[string]*workspace
}

func newRegistry() *registry {
	return &registry{byUser: make(map[string]*workspace)}
}

// get returns the user's workspace, creating it on first use.
func (r *registry) get(userID string) *workspace {
	r.mu.RLock()
	w, ok := r.byUser[userID]
	r.mu.RUnlock()
	if ok {
		return w
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.byUser[userID]; ok {
		return w
	}
	w = newWorkspace()
	r.byUser[userID] = w
	return w
}

// len returns the number of live workspaces.
func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}
