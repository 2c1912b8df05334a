package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"brain/internal/dlock"
	"brain/internal/pubsub"

	"github.com/go-playground/validator/v10"
)

type graphService struct {
	logger    *slog.Logger
	repo      Repository
	locker    dlock.Locker
	publisher pubsub.Publisher
	validate  *validator.Validate
}

// NewGraphService wires a repository behind the dataset lease. Every call holds
// the lease for the duration of its repository work.
func NewGraphService(logger *slog.Logger, repo Repository, locker dlock.Locker, publisher pubsub.Publisher) Service {
	return &graphService{
		logger:    logger,
		repo:      repo,
		locker:    locker,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// ReadGraph returns the whole graph
func (s *graphService) ReadGraph(ctx context.Context) (Graph, error) {
	g, err := dlock.Do(ctx, s.locker, s.repo.ReadGraph)
	if err != nil {
		return Graph{}, err
	}
	s.logger.Debug("Read graph",
		"entities", len(g.Entities),
		"relations", len(g.Relations),
	)
	return g, nil
}

// CreateEntities validates and stores new entities
func (s *graphService) CreateEntities(ctx context.Context, entities []Entity) ([]Entity, error) {
	if err := s.validateBatch("entities", len(entities), func(i int) any { return entities[i] }); err != nil {
		return nil, err
	}

	created, err := dlock.Do(ctx, s.locker, func(ctx context.Context) ([]Entity, error) {
		return s.repo.CreateEntities(ctx, entities)
	})
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(created))
	for _, e := range created {
		keys = append(keys, e.Name)
	}
	s.notify(ctx, pubsub.TopicEntitiesCreated, "entities", keys)
	return created, nil
}

// CreateRelations validates and stores new relations
func (s *graphService) CreateRelations(ctx context.Context, relations []Relation) ([]Relation, error) {
	if err := s.validateBatch("relations", len(relations), func(i int) any { return relations[i] }); err != nil {
		return nil, err
	}

	created, err := dlock.Do(ctx, s.locker, func(ctx context.Context) ([]Relation, error) {
		return s.repo.CreateRelations(ctx, relations)
	})
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(created))
	for _, r := range created {
		keys = append(keys, fmt.Sprintf("%s -[%s]-> %s", r.From, r.RelationType, r.To))
	}
	s.notify(ctx, pubsub.TopicRelationsCreated, "relations", keys)
	return created, nil
}

func (s *graphService) validateBatch(kind string, n int, item func(i int) any) error {
	if n == 0 {
		return fmt.Errorf("%w: no %s given", ErrInvalidInput, kind)
	}
	for i := 0; i < n; i++ {
		if err := s.validate.Struct(item(i)); err != nil {
			return fmt.Errorf("%w: %s[%d]: %v", ErrInvalidInput, kind, i, err)
		}
	}
	return nil
}

// notify publishes a change event. The write has already committed, so a
// failure here is only logged.
func (s *graphService) notify(ctx context.Context, topic, kind string, keys []string) {
	msg, err := json.Marshal(pubsub.GraphChange{
		Kind:  kind,
		Count: len(keys),
		Keys:  keys,
		At:    time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("Failed to marshal graph change event", "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, topic, msg); err != nil {
		s.logger.Error("Failed to publish graph change event",
			"error", err,
			"topic", topic,
		)
	}
}
