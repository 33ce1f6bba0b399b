package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"contentdash/internal/models"
)

// overviewProjection limits strategy documents to the fields the dashboard
// groups, searches and filters on.
var overviewProjection = bson.D{
	{Key: itemsField + "._id", Value: 1},
	{Key: itemsField + ".category", Value: 1},
	{Key: itemsField + ".mainFeature", Value: 1},
	{Key: itemsField + ".selectedItem", Value: 1},
	{Key: itemsField + ".status", Value: 1},
	{Key: itemsField + ".metrics", Value: 1},
	{Key: itemsField + ".contentGuidelines.focus", Value: 1},
	{Key: itemsField + ".contentGuidelines.targetAudience", Value: 1},
	{Key: itemsField + ".contentGuidelines.contentType", Value: 1},
	{Key: itemsField + ".longTerms", Value: 1},
	{Key: itemsField + ".relatedTerms", Value: 1},
}

// ParseTopicID converts a hex topic identity into an ObjectID.
func ParseTopicID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidTopicID, id)
	}
	return oid, nil
}

// ListStrategies returns every strategy document. When projected is true only
// the overview fields of each topic are loaded.
func (d *DB) ListStrategies(ctx context.Context, projected bool) ([]models.Strategy, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	opts := options.Find()
	if projected {
		opts.SetProjection(overviewProjection)
	}

	cursor, err := d.strategies().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, wrapErr("list strategies", err)
	}

	var strategies []models.Strategy
	if err := cursor.All(ctx, &strategies); err != nil {
		return nil, wrapErr("decode strategies", err)
	}
	return strategies, nil
}

// GetTopic locates the strategy owning the topic and extracts that topic.
func (d *DB) GetTopic(ctx context.Context, id primitive.ObjectID) (*models.Topic, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	var strategy models.Strategy
	err := d.strategies().FindOne(ctx, topicFilter(id)).Decode(&strategy)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTopicNotFound
	}
	if err != nil {
		return nil, wrapErr("find topic", err)
	}

	items := strategy.Items()
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}

	// The query matched on this id, so the array must contain it.
	slog.Error("strategy matched topic query but does not contain the topic",
		"topic_id", id.Hex(),
		"strategy_id", strategy.ID.Hex(),
	)
	return nil, ErrTopicNotFound
}

// ListSelectedTopics returns every topic in the review queue, flattened
// across strategies in document order.
func (d *DB) ListSelectedTopics(ctx context.Context) ([]models.Topic, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	filter := bson.D{{Key: itemsField + ".status", Value: models.StatusSelected}}
	cursor, err := d.strategies().Find(ctx, filter)
	if err != nil {
		return nil, wrapErr("list selected topics", err)
	}

	var strategies []models.Strategy
	if err := cursor.All(ctx, &strategies); err != nil {
		return nil, wrapErr("decode selected topics", err)
	}

	var selected []models.Topic
	for i := range strategies {
		for _, item := range strategies[i].Items() {
			if item.IsSelected() {
				selected = append(selected, item)
			}
		}
	}
	return selected, nil
}

// CountTopicsByStatus returns the number of topics per status. Topics
// without a status are counted as active.
func (d *DB) CountTopicsByStatus(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$" + itemsField}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + itemsField + ".status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := d.strategies().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapErr("count topics", err)
	}

	var rows []struct {
		Status *string `bson:"_id"`
		Count  int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, wrapErr("decode topic counts", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		status := models.StatusActive
		if row.Status != nil && *row.Status != "" {
			status = *row.Status
		}
		counts[status] += row.Count
	}
	return counts, nil
}

func topicFilter(id primitive.ObjectID) bson.D {
	return bson.D{{Key: itemsField + "._id", Value: id}}
}
