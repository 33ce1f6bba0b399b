package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"contentdash/internal/models"
)

// TopicReader is the read side of the topic store used by the pages.
type TopicReader interface {
	ListStrategies(ctx context.Context, projected bool) ([]models.Strategy, error)
	GetTopic(ctx context.Context, id primitive.ObjectID) (*models.Topic, error)
	ListSelectedTopics(ctx context.Context) ([]models.Topic, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
