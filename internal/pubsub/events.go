package pubsub

import "time"

const (
	TopicEntitiesCreated  = "graph.entities.created"
	TopicRelationsCreated = "graph.relations.created"
)

// GraphChange is published after a write to the graph has committed
type GraphChange struct {
	Kind  string    `json:"kind"`
	Count int       `json:"count"`
	Keys  []string  `json:"keys"`
	At    time.Time `json:"at"`
}
