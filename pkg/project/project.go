// Package project owns the persisted unit of work - a named diagram plus
// its conversation log - and the in-memory state manager that orchestrates
// the validate → transform → layout pipeline around it.
//
// A Project is what storage backends see: the diagram interchange payload
// (reconstructed from the live graph at save time, never the layout
// positions), the ordered message log, and metadata. The Store interface
// abstracts persistence with implementations for different deployments:
//   - memory: in-memory storage for development/testing
//   - file: JSON files in a config directory for CLI use
//   - mongo: MongoDB for hosted multi-instance deployments
package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/diaflow/pkg/diagram"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a project does not exist.
	ErrNotFound = errors.New("project not found")

	// ErrNoActiveProject is returned by manager operations that require an
	// active project when there is none.
	ErrNoActiveProject = errors.New("no active project")
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversation entry. The log is append-only within a
// project and cleared when a different project becomes active.
type Message struct {
	ID        string    `json:"id" bson:"id"`
	Role      string    `json:"role" bson:"role"`
	Content   string    `json:"content" bson:"content"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// NewMessage creates a message with a fresh ID and the current time.
func NewMessage(role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// Project is the persisted unit. Diagram holds the interchange payload -
// the live graph with positions is derived state, recomputed on load.
// Timestamps serialize as RFC 3339 strings on the wire.
type Project struct {
	ID          string          `json:"id" bson:"_id"`
	Name        string          `json:"name" bson:"name"`
	DiagramType diagram.Kind    `json:"diagramType" bson:"diagramType"`
	Diagram     diagram.Diagram `json:"diagram" bson:"diagram"`
	Messages    []Message       `json:"messages" bson:"messages"`
	CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// New creates an empty project of the given kind with a placeholder name.
func New(kind diagram.Kind) Project {
	now := time.Now().UTC()
	return Project{
		ID:          uuid.NewString(),
		Name:        "Untitled Project",
		DiagramType: kind,
		Diagram:     diagram.Diagram{Type: kind},
		Messages:    []Message{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Store is the interface for project persistence backends.
// Implementations return ErrNotFound (or nil, nil where documented) rather
// than panicking; storage failures surface as wrapped errors the manager
// treats as no-ops.
type Store interface {
	// Save persists a project, replacing any existing record with the same ID.
	Save(ctx context.Context, p Project) error

	// LoadAll returns every stored project. Order is unspecified.
	LoadAll(ctx context.Context) ([]Project, error)

	// LoadByID returns a project by ID.
	// Returns nil, nil if the project doesn't exist.
	LoadByID(ctx context.Context, id string) (*Project, error)

	// DeleteByID removes a project. Deleting a missing project is not an error.
	DeleteByID(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
