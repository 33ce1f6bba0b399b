package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"contentdash/internal/models"
)

// positional addresses the array element matched by topicFilter.
const positional = itemsField + ".$."

// UpdateTopicStatus sets a topic's status verbatim.
func (d *DB) UpdateTopicStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return d.updateTopic(ctx, "update topic status", id, bson.D{
		{Key: positional + "status", Value: status},
	})
}

// UpdateTopicNote sets a topic's note and stamps updated_at.
func (d *DB) UpdateTopicNote(ctx context.Context, id primitive.ObjectID, note string, now time.Time) error {
	return d.updateTopic(ctx, "update topic note", id, bson.D{
		{Key: positional + "note", Value: note},
		{Key: positional + "updated_at", Value: now},
	})
}

// UpdateTopicURLs replaces both reference URL lists and stamps updated_at.
func (d *DB) UpdateTopicURLs(ctx context.Context, id primitive.ObjectID, competitor, youtube []models.URLEntry, now time.Time) error {
	if competitor == nil {
		competitor = []models.URLEntry{}
	}
	if youtube == nil {
		youtube = []models.URLEntry{}
	}

	return d.updateTopic(ctx, "update topic urls", id, bson.D{
		{Key: positional + "competitorUrls", Value: models.URLList{URLs: competitor, LastUpdated: &now}},
		{Key: positional + "youtubeUrls", Value: models.URLList{URLs: youtube, LastUpdated: &now}},
		{Key: positional + "updated_at", Value: now},
	})
}

// updateTopic applies $set to the single matched array element. A topic is
// missing only when no document matched; an update that leaves the values
// unchanged still succeeds.
func (d *DB) updateTopic(ctx context.Context, op string, id primitive.ObjectID, set bson.D) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	result, err := d.strategies().UpdateOne(ctx, topicFilter(id), bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return wrapErr(op, err)
	}
	if result.MatchedCount == 0 {
		return ErrTopicNotFound
	}
	return nil
}
