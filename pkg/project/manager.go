package project

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diaflow/pkg/diagram"
	"github.com/matzehuels/diaflow/pkg/graph"
	"github.com/matzehuels/diaflow/pkg/pipeline"
)

// Manager owns the live node/edge graph, the conversation log and the
// project index, and orchestrates the diagram pipeline on every update and
// load.
//
// Operations are multi-step transitions (load = fetch + transform + layout +
// replace) that must be observed atomically, so a single mutex guards every
// entry point rather than field-level locks. The manager is safe for
// concurrent use; construct one per independent workspace.
type Manager struct {
	mu sync.Mutex

	store  Store
	runner *pipeline.Runner
	logger *log.Logger

	projects []Project // index of known projects, creation order
	activeID string
	kind     diagram.Kind
	nodes    []graph.Node
	edges    []graph.Edge
	messages []Message
	loading  bool
	dirty    bool
}

// NewManager creates a manager over the given store and pipeline runner.
// A nil runner gets a cache-less default; a nil logger discards output.
func NewManager(store Store, runner *pipeline.Runner, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	return &Manager{
		store:    store,
		runner:   runner,
		logger:   logger,
		messages: []Message{},
	}
}

// RefreshIndex replaces the project index with the store's contents,
// ordered by creation time. The live graph is untouched.
func (m *Manager) RefreshIndex(ctx context.Context) error {
	projects, err := m.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	slices.SortFunc(projects, func(a, b Project) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects = projects
	return nil
}

// CreateProject allocates a fresh empty project of the given kind, makes it
// active, and resets the live graph and conversation log. Unsaved edits of
// the previously active project are discarded - there is no implicit save.
func (m *Manager) CreateProject(kind diagram.Kind) Project {
	p := New(kind)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.projects = append(m.projects, p)
	m.activeID = p.ID
	m.kind = kind
	m.nodes = []graph.Node{}
	m.edges = []graph.Edge{}
	m.messages = []Message{}
	m.loading = false
	m.dirty = false

	m.logger.Info("created project", "id", p.ID, "kind", kind)
	return p
}

// UpdateFromPayload runs the pipeline on an untrusted diagram payload and
// replaces the live graph with the result. Validation failures are logged
// and returned but do not block applying the best-effort graph; the one
// thing that can fail is the absence of an active project.
func (m *Manager) UpdateFromPayload(ctx context.Context, candidate any) (diagram.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeID == "" {
		return diagram.Result{}, ErrNoActiveProject
	}

	result, err := m.runner.Execute(ctx, candidate, pipeline.Options{Logger: m.logger})
	if err != nil {
		return diagram.Result{}, err
	}

	m.nodes = result.Nodes
	m.edges = result.Edges
	m.kind = result.Diagram.Type
	m.dirty = true
	return result.Validation, nil
}

// Save reconstructs the diagram from the live graph and persists the active
// project. Storage failures leave in-memory state untouched. Saving with no
// active project is a no-op.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeID == "" {
		return nil
	}
	idx := m.indexOf(m.activeID)
	if idx < 0 {
		return ErrNoActiveProject
	}

	p := m.projects[idx]
	p.DiagramType = m.kind
	p.Diagram = graph.ToDiagram(m.kind, m.nodes, m.edges)
	p.Messages = slices.Clone(m.messages)
	p.UpdatedAt = time.Now().UTC()

	if err := m.store.Save(ctx, p); err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	m.projects[idx] = p
	m.dirty = false
	m.logger.Info("saved project", "id", p.ID, "name", p.Name)
	return nil
}

// Load activates a stored project: the stored diagram is re-validated and
// re-laid-out (stored positions are never trusted) and the conversation log
// is restored. Returns ErrNotFound, with state untouched, for unknown IDs.
func (m *Manager) Load(ctx context.Context, id string) error {
	p, err := m.store.LoadByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	if p == nil {
		return ErrNotFound
	}

	result, err := m.runner.ExecuteDiagram(ctx, p.Diagram, pipeline.Options{Logger: m.logger})
	if err != nil {
		return fmt.Errorf("rebuild graph: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if idx := m.indexOf(p.ID); idx >= 0 {
		m.projects[idx] = *p
	} else {
		m.projects = append(m.projects, *p)
	}
	m.activeID = p.ID
	m.kind = result.Diagram.Type
	m.nodes = result.Nodes
	m.edges = result.Edges
	m.messages = slices.Clone(p.Messages)
	if m.messages == nil {
		m.messages = []Message{}
	}
	m.loading = false
	m.dirty = false

	m.logger.Info("loaded project", "id", p.ID, "name", p.Name, "nodes", len(result.Nodes))
	return nil
}

// Delete removes a project from storage and the index. If the deleted
// project was active, the live graph and log are cleared and no project is
// active afterwards.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.projects = slices.DeleteFunc(m.projects, func(p Project) bool { return p.ID == id })
	if m.activeID == id {
		m.activeID = ""
		m.kind = ""
		m.nodes = []graph.Node{}
		m.edges = []graph.Edge{}
		m.messages = []Message{}
		m.loading = false
		m.dirty = false
	}
	m.logger.Info("deleted project", "id", id)
	return nil
}

// AddMessage appends a conversation entry to the active project's log.
func (m *Manager) AddMessage(role, content string) Message {
	msg := NewMessage(role, content)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	m.dirty = true
	return msg
}

// RenameActive sets the display name of the active project.
// Returns ErrNoActiveProject when nothing is active.
func (m *Manager) RenameActive(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(m.activeID)
	if m.activeID == "" || idx < 0 {
		return ErrNoActiveProject
	}
	m.projects[idx].Name = name
	m.dirty = true
	return nil
}

// SetNodes replaces the live node list without re-running the pipeline.
// This is the write-back path for interactive position edits.
func (m *Manager) SetNodes(nodes []graph.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes = graph.CloneNodes(nodes)
	m.dirty = true
}

// SetEdges replaces the live edge list without re-running the pipeline.
func (m *Manager) SetEdges(edges []graph.Edge) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = graph.CloneEdges(edges)
	m.dirty = true
}

// SetLoading flags an in-flight generation call. The flag is advisory - the
// manager does not reject updates while it is set; preventing concurrent
// submission is the caller's concern.
func (m *Manager) SetLoading(loading bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = loading
}

// IsLoading reports whether a generation call is flagged as in flight.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Dirty reports whether the live state has unsaved changes.
func (m *Manager) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// Nodes returns a copy of the live node list.
func (m *Manager) Nodes() []graph.Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return graph.CloneNodes(m.nodes)
}

// Edges returns a copy of the live edge list.
func (m *Manager) Edges() []graph.Edge {
	m.mu.Lock()
	defer m.mu.Unlock()
	return graph.CloneEdges(m.edges)
}

// Messages returns a copy of the active conversation log.
func (m *Manager) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.messages)
}

// Kind returns the active diagram kind ("" when no project is active).
func (m *Manager) Kind() diagram.Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.kind
}

// Projects returns a copy of the project index.
func (m *Manager) Projects() []Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.projects)
}

// Active returns the active project and true, or a zero project and false.
func (m *Manager) Active() (Project, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(m.activeID)
	if m.activeID == "" || idx < 0 {
		return Project{}, false
	}
	return m.projects[idx], true
}

// indexOf returns the index of a project in the index, or -1.
// Callers must hold m.mu.
func (m *Manager) indexOf(id string) int {
	return slices.IndexFunc(m.projects, func(p Project) bool { return p.ID == id })
}
