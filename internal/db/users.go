package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"contentdash/internal/models"
	"contentdash/internal/validation"
)

// GetUserByEmail retrieves exactly one user by normalized email.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	var user models.User
	err := d.users().FindOne(ctx, bson.D{{Key: "email", Value: validation.NormalizeEmail(email)}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, wrapErr("find user", err)
	}
	return &user, nil
}

// UpsertUser creates or updates a user keyed by normalized email and fills
// in the stored ID.
func (d *DB) UpsertUser(ctx context.Context, user *models.User) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	user.Email = validation.NormalizeEmail(user.Email)

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "email", Value: user.Email},
		{Key: "password", Value: user.Password},
		{Key: "name", Value: user.Name},
	}}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.User
	err := d.users().FindOneAndUpdate(ctx, bson.D{{Key: "email", Value: user.Email}}, update, opts).Decode(&stored)
	if err != nil {
		return wrapErr("upsert user", err)
	}

	user.ID = stored.ID
	return nil
}
