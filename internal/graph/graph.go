package graph

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidInput is returned when entities or relations fail validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when an entity name or relation triple already exists.
	ErrConflict = errors.New("already exists")

	// ErrUnknownEntity is returned when a relation references an entity that does not exist.
	ErrUnknownEntity = errors.New("unknown entity")
)

// Entity is a named node of the memory graph with free-form observations
type Entity struct {
	Name         string    `json:"name" db:"name" validate:"required"`
	EntityType   string    `json:"entity_type" db:"entity_type" validate:"required"`
	Observations []string  `json:"observations" db:"observations"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Relation is a typed, directed edge between two entities
type Relation struct {
	From         string    `json:"from" db:"from" validate:"required"`
	To           string    `json:"to" db:"to" validate:"required"`
	RelationType string    `json:"relation_type" db:"relation_type" validate:"required"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Graph is the whole dataset
type Graph struct {
	Entities  []Entity   `json:"entities"`
	Relations []Relation `json:"relations"`
}

// Repository stores entities and relations. It does no locking of its own;
// callers serialize access through Service.
//
//go:generate go run go.uber.org/mock/mockgen@latest -source=graph.go -destination=../../mocks/mock_graph.go -package=mocks
type Repository interface {
	// ReadGraph returns every entity and relation
	ReadGraph(ctx context.Context) (Graph, error)

	// CreateEntities inserts all entities or none
	CreateEntities(ctx context.Context, entities []Entity) ([]Entity, error)

	// CreateRelations inserts all relations or none
	CreateRelations(ctx context.Context, relations []Relation) ([]Relation, error)
}

// Service exposes the graph operations, each run under the dataset lease
type Service interface {
	ReadGraph(ctx context.Context) (Graph, error)
	CreateEntities(ctx context.Context, entities []Entity) ([]Entity, error)
	CreateRelations(ctx context.Context, relations []Relation) ([]Relation, error)
}
