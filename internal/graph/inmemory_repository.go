package graph

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type relationKey struct {
	from, to, relationType string
}

type inMemoryRepository struct {
	entities  map[string]Entity
	relations map[relationKey]Relation
	mu        sync.RWMutex
}

func NewInMemoryRepository() *inMemoryRepository {
	return &inMemoryRepository{
		entities:  make(map[string]Entity),
		relations: make(map[relationKey]Relation),
	}
}

func (r *inMemoryRepository) ReadGraph(_ context.Context) (Graph, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g := Graph{
		Entities:  make([]Entity, 0, len(r.entities)),
		Relations: make([]Relation, 0, len(r.relations)),
	}
	for _, e := range r.entities {
		e.Observations = append([]string{}, e.Observations...)
		g.Entities = append(g.Entities, e)
	}
	for _, rel := range r.relations {
		g.Relations = append(g.Relations, rel)
	}

	sort.Slice(g.Entities, func(i, j int) bool { return g.Entities[i].Name < g.Entities[j].Name })
	sort.Slice(g.Relations, func(i, j int) bool {
		a, b := g.Relations[i], g.Relations[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.RelationType < b.RelationType
	})
	return g, nil
}

func (r *inMemoryRepository) CreateEntities(_ context.Context, entities []Entity) ([]Entity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		_, exists := r.entities[e.Name]
		_, dup := batch[e.Name]
		if exists || dup {
			return nil, fmt.Errorf("entity %q: %w", e.Name, ErrConflict)
		}
		batch[e.Name] = struct{}{}
	}

	now := time.Now().UTC()
	created := make([]Entity, 0, len(entities))
	for _, e := range entities {
		e.Observations = append([]string{}, e.Observations...)
		e.CreatedAt, e.UpdatedAt = now, now
		r.entities[e.Name] = e
		created = append(created, e)
	}
	return created, nil
}

func (r *inMemoryRepository) CreateRelations(_ context.Context, relations []Relation) ([]Relation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make(map[relationKey]struct{}, len(relations))
	for _, rel := range relations {
		for _, name := range []string{rel.From, rel.To} {
			if _, ok := r.entities[name]; !ok {
				return nil, fmt.Errorf("relation %s -[%s]-> %s references %q: %w", rel.From, rel.RelationType, rel.To, name, ErrUnknownEntity)
			}
		}
		key := relationKey{rel.From, rel.To, rel.RelationType}
		_, exists := r.relations[key]
		_, dup := batch[key]
		if exists || dup {
			return nil, fmt.Errorf("relation %s -[%s]-> %s: %w", rel.From, rel.RelationType, rel.To, ErrConflict)
		}
		batch[key] = struct{}{}
	}

	now := time.Now().UTC()
	created := make([]Relation, 0, len(relations))
	for _, rel := range relations {
		rel.CreatedAt, rel.UpdatedAt = now, now
		r.relations[relationKey{rel.From, rel.To, rel.RelationType}] = rel
		created = append(created, rel)
	}
	return created, nil
}
