package graph_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"brain/internal/dlock"
	"brain/internal/graph"
	"brain/internal/pubsub"
	"brain/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// passThroughLocker expects one WithLock call and runs the protected function.
func passThroughLocker(ctrl *gomock.Controller) *mocks.MockLocker {
	locker := mocks.NewMockLocker(ctrl)
	locker.EXPECT().
		WithLock(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error, _ ...dlock.LockOption) error {
			return fn(ctx)
		})
	return locker
}

func TestGraphService_ReadGraph(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRepository(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)
	want := graph.Graph{
		Entities:  []graph.Entity{{Name: "alice", EntityType: "person", Observations: []string{"likes go"}}},
		Relations: []graph.Relation{},
	}
	repo.EXPECT().ReadGraph(gomock.Any()).Return(want, nil)

	service := graph.NewGraphService(setupTestLogger(), repo, passThroughLocker(ctrl), publisher)

	got, err := service.ReadGraph(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGraphService_HoldsLeaseDuringRepositoryCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := dlock.NewInMemoryStore()
	manager, err := dlock.NewLeaseManager(setupTestLogger(), store, "memory_lock")
	require.NoError(t, err)

	repo := mocks.NewMockRepository(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)
	entities := []graph.Entity{{Name: "alice", EntityType: "person"}}

	repo.EXPECT().CreateEntities(gomock.Any(), entities).DoAndReturn(func(ctx context.Context, in []graph.Entity) ([]graph.Entity, error) {
		_, held, err := store.Get(ctx, "memory_lock")
		require.NoError(t, err)
		assert.True(t, held, "Repository writes must happen while the lease is held")
		return in, nil
	})
	publisher.EXPECT().Publish(gomock.Any(), pubsub.TopicEntitiesCreated, gomock.Any()).Return(nil)

	service := graph.NewGraphService(setupTestLogger(), repo, manager, publisher)
	created, err := service.CreateEntities(context.Background(), entities)
	require.NoError(t, err)
	assert.Equal(t, entities, created)

	_, held, err := store.Get(context.Background(), "memory_lock")
	require.NoError(t, err)
	assert.False(t, held, "Lease should be released once the call returns")
}

func TestGraphService_CreateEntitiesPublishesChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRepository(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)
	entities := []graph.Entity{
		{Name: "alice", EntityType: "person"},
		{Name: "bob", EntityType: "person", Observations: []string{"writes rust"}},
	}
	repo.EXPECT().CreateEntities(gomock.Any(), entities).Return(entities, nil)
	publisher.EXPECT().
		Publish(gomock.Any(), pubsub.TopicEntitiesCreated, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msg []byte) error {
			var change pubsub.GraphChange
			require.NoError(t, json.Unmarshal(msg, &change))
			assert.Equal(t, "entities", change.Kind)
			assert.Equal(t, 2, change.Count)
			assert.Equal(t, []string{"alice", "bob"}, change.Keys)
			return nil
		})

	service := graph.NewGraphService(setupTestLogger(), repo, passThroughLocker(ctrl), publisher)
	_, err := service.CreateEntities(context.Background(), entities)
	require.NoError(t, err)
}

func TestGraphService_CreateRelationsPublishesChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRepository(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)
	relations := []graph.Relation{{From: "alice", To: "bob", RelationType: "knows"}}
	repo.EXPECT().CreateRelations(gomock.Any(), relations).Return(relations, nil)
	publisher.EXPECT().
		Publish(gomock.Any(), pubsub.TopicRelationsCreated, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msg []byte) error {
			var change pubsub.GraphChange
			require.NoError(t, json.Unmarshal(msg, &change))
			assert.Equal(t, []string{"alice -[knows]-> bob"}, change.Keys)
			return nil
		})

	service := graph.NewGraphService(setupTestLogger(), repo, passThroughLocker(ctrl), publisher)
	created, err := service.CreateRelations(context.Background(), relations)
	require.NoError(t, err)
	assert.Equal(t, relations, created)
}

func TestGraphService_ValidationHappensBeforeLocking(t *testing.T) {
	tests := []struct {
		name string
		call func(s graph.Service) error
	}{
		{"no entities", func(s graph.Service) error {
			_, err := s.CreateEntities(context.Background(), nil)
			return err
		}},
		{"entity without name", func(s graph.Service) error {
			_, err := s.CreateEntities(context.Background(), []graph.Entity{{EntityType: "person"}})
			return err
		}},
		{"entity without type", func(s graph.Service) error {
			_, err := s.CreateEntities(context.Background(), []graph.Entity{{Name: "alice"}})
			return err
		}},
		{"no relations", func(s graph.Service) error {
			_, err := s.CreateRelations(context.Background(), []graph.Relation{})
			return err
		}},
		{"relation without type", func(s graph.Service) error {
			_, err := s.CreateRelations(context.Background(), []graph.Relation{{From: "a", To: "b"}})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No expectations: neither the lock nor the repository may be touched.
			service := graph.NewGraphService(setupTestLogger(),
				mocks.NewMockRepository(ctrl), mocks.NewMockLocker(ctrl), mocks.NewMockPublisher(ctrl))

			err := tt.call(service)
			assert.ErrorIs(t, err, graph.ErrInvalidInput)
		})
	}
}

func TestGraphService_LockFailureSkipsWork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	locker := mocks.NewMockLocker(ctrl)
	locker.EXPECT().WithLock(gomock.Any(), gomock.Any()).Return(dlock.ErrAcquisitionExhausted)

	service := graph.NewGraphService(setupTestLogger(),
		mocks.NewMockRepository(ctrl), locker, mocks.NewMockPublisher(ctrl))

	_, err := service.CreateEntities(context.Background(), []graph.Entity{{Name: "alice", EntityType: "person"}})
	assert.ErrorIs(t, err, dlock.ErrAcquisitionExhausted)
}

func TestGraphService_RepositoryErrorIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRepository(ctrl)
	relations := []graph.Relation{{From: "alice", To: "nobody", RelationType: "knows"}}
	repo.EXPECT().CreateRelations(gomock.Any(), relations).Return(nil, graph.ErrUnknownEntity)

	// No publish expected on failure.
	service := graph.NewGraphService(setupTestLogger(), repo, passThroughLocker(ctrl), mocks.NewMockPublisher(ctrl))

	_, err := service.CreateRelations(context.Background(), relations)
	assert.ErrorIs(t, err, graph.ErrUnknownEntity)
}

func TestGraphService_PublishFailureDoesNotFailWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRepository(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)
	entities := []graph.Entity{{Name: "alice", EntityType: "person"}}
	repo.EXPECT().CreateEntities(gomock.Any(), entities).Return(entities, nil)
	publisher.EXPECT().Publish(gomock.Any(), pubsub.TopicEntitiesCreated, gomock.Any()).Return(errors.New("broker down"))

	service := graph.NewGraphService(setupTestLogger(), repo, passThroughLocker(ctrl), publisher)
	created, err := service.CreateEntities(context.Background(), entities)
	require.NoError(t, err)
	assert.Len(t, created, 1)
}
