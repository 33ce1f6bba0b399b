package db

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"contentdash/internal/models"
)

const usersNS = "test." + UsersCollection

func TestGetUserByEmail(t *testing.T) {
	mt := newMockT(t)

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "a@b.c"},
			{Key: "password", Value: "x"},
		}))

		user, err := mockDB(mt).GetUserByEmail(context.Background(), "  A@B.c ")
		if err != nil {
			t.Fatalf("GetUserByEmail() error = %v", err)
		}
		if user.ID != id || user.Email != "a@b.c" || user.Password != "x" {
			t.Errorf("GetUserByEmail() = %+v", user)
		}

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		if got := filter.Lookup("email").StringValue(); got != "a@b.c" {
			t.Errorf("filter email = %q, want %q", got, "a@b.c")
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		_, err := mockDB(mt).GetUserByEmail(context.Background(), "nobody@example.com")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("GetUserByEmail() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestUpsertUser(t *testing.T) {
	mt := newMockT(t)

	mt.Run("normalizes email and returns the id", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "editor@example.com"},
			{Key: "password", Value: "secret"},
		}}))

		user := &models.User{Email: " Editor@Example.com", Password: "secret"}
		if err := mockDB(mt).UpsertUser(context.Background(), user); err != nil {
			t.Fatalf("UpsertUser() error = %v", err)
		}
		if user.ID != id {
			t.Errorf("UpsertUser() id = %s, want %s", user.ID.Hex(), id.Hex())
		}
		if user.Email != "editor@example.com" {
			t.Errorf("UpsertUser() email = %q, want lower-cased", user.Email)
		}

		started := mt.GetStartedEvent()
		if started.CommandName != "findAndModify" {
			t.Fatalf("command = %q, want findAndModify", started.CommandName)
		}
		if upsert, ok := started.Command.Lookup("upsert").BooleanOK(); !ok || !upsert {
			t.Error("findAndModify was not sent with upsert: true")
		}
	})
}

func TestUpsertUser_Integration(t *testing.T) {
	d, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := &models.User{Email: "Editor@Example.com", Password: "first"}
	if err := d.UpsertUser(ctx, user); err != nil {
		t.Fatalf("UpsertUser() create error = %v", err)
	}
	firstID := user.ID

	again := &models.User{Email: "editor@example.com", Password: "second", Name: "Editor"}
	if err := d.UpsertUser(ctx, again); err != nil {
		t.Fatalf("UpsertUser() update error = %v", err)
	}
	if again.ID != firstID {
		t.Errorf("UpsertUser() update id = %s, want %s", again.ID.Hex(), firstID.Hex())
	}

	got, err := d.GetUserByEmail(ctx, "EDITOR@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if got.Password != "second" || got.Name != "Editor" {
		t.Errorf("GetUserByEmail() = %+v, want updated password and name", got)
	}
}
