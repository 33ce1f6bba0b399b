package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"contentdash/internal/models"
)

// SeedResult summarizes what Seed wrote.
type SeedResult struct {
	Users      int
	Strategies int
	Topics     int
}

// Seed upserts users and inserts strategies, assigning ids to topics that
// lack one. Strategies are always inserted as new documents.
func (d *DB) Seed(ctx context.Context, users []models.User, strategies []models.Strategy) (SeedResult, error) {
	var result SeedResult

	for i := range users {
		if err := d.UpsertUser(ctx, &users[i]); err != nil {
			return result, err
		}
		result.Users++
	}

	for i := range strategies {
		if err := d.InsertStrategy(ctx, &strategies[i]); err != nil {
			return result, err
		}
		result.Strategies++
		result.Topics += len(strategies[i].Items())
	}

	return result, nil
}

// InsertStrategy stores a new strategy document. The unique items index
// only compares ids across documents, so repeats within this strategy are
// rejected here.
func (d *DB) InsertStrategy(ctx context.Context, strategy *models.Strategy) error {
	items := strategy.ClientData.ContentStrategy.Items
	seen := make(map[primitive.ObjectID]struct{}, len(items))
	for i := range items {
		if items[i].ID.IsZero() {
			continue
		}
		if _, ok := seen[items[i].ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateTopic, items[i].ID.Hex())
		}
		seen[items[i].ID] = struct{}{}
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	if strategy.ID.IsZero() {
		strategy.ID = primitive.NewObjectID()
	}
	for i := range items {
		if items[i].ID.IsZero() {
			items[i].ID = primitive.NewObjectID()
		}
		if items[i].Status == "" {
			items[i].Status = models.StatusActive
		}
	}

	_, err := d.strategies().InsertOne(ctx, strategy)
	return wrapErr("insert strategy", err)
}
