// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"contentdash/internal/db"
	"contentdash/internal/models"
	"contentdash/internal/validation"
)

// Store is an in-memory stand-in for *db.DB. It keeps the same not-found
// and matched-count rules as the real store.
type Store struct {
	mu         sync.Mutex
	strategies []models.Strategy
	users      []models.User

	// Err, when set, is returned by every call.
	Err error
	writes int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// AddUser stores a user with a normalized email.
func (s *Store) AddUser(email, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := models.User{ID: primitive.NewObjectID(), Email: validation.NormalizeEmail(email), Password: password}
	s.users = append(s.users, u)
	return u
}

// AddStrategy stores a strategy, assigning ids to it and its topics.
func (s *Store) AddStrategy(items ...models.Topic) models.Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range items {
		if items[i].ID.IsZero() {
			items[i].ID = primitive.NewObjectID()
		}
	}
	st := models.Strategy{
		ID:         primitive.NewObjectID(),
		ClientData: models.ClientData{ContentStrategy: models.ContentStrategy{Items: items}},
	}
	s.strategies = append(s.strategies, st)
	return st
}

// Topic returns a copy of the stored topic, or nil.
func (s *Store) Topic(id primitive.ObjectID) *models.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t := s.find(id); t != nil {
		cp := *t
		return &cp
	}
	return nil
}

func (s *Store) find(id primitive.ObjectID) *models.Topic {
	for i := range s.strategies {
		items := s.strategies[i].ClientData.ContentStrategy.Items
		for j := range items {
			if items[j].ID == id {
				return &items[j]
			}
		}
	}
	return nil
}

// GetUserByEmail implements the user lookup.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	email = validation.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, db.ErrUserNotFound
}

// ListStrategies returns copies of every strategy.
func (s *Store) ListStrategies(_ context.Context, _ bool) ([]models.Strategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.Strategy, len(s.strategies))
	for i, st := range s.strategies {
		out[i] = st
		out[i].ClientData.ContentStrategy.Items = append([]models.Topic(nil), st.Items()...)
	}
	return out, nil
}

// GetTopic returns one topic by id.
func (s *Store) GetTopic(_ context.Context, id primitive.ObjectID) (*models.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if t := s.find(id); t != nil {
		cp := *t
		return &cp, nil
	}
	return nil, db.ErrTopicNotFound
}

// ListSelectedTopics returns selected topics in document order.
func (s *Store) ListSelectedTopics(_ context.Context) ([]models.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Topic
	for _, st := range s.strategies {
		for _, item := range st.Items() {
			if item.IsSelected() {
				out = append(out, item)
			}
		}
	}
	return out, nil
}

// CountTopicsByStatus counts topics per effective status.
func (s *Store) CountTopicsByStatus(_ context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	counts := make(map[string]int64)
	for _, st := range s.strategies {
		for _, item := range st.Items() {
			counts[item.EffectiveStatus()]++
		}
	}
	return counts, nil
}

// UpdateTopicStatus sets a topic's status.
func (s *Store) UpdateTopicStatus(_ context.Context, id primitive.ObjectID, status string) error {
	return s.update(id, func(t *models.Topic) { t.Status = status })
}

// UpdateTopicNote sets a topic's note and updated_at.
func (s *Store) UpdateTopicNote(_ context.Context, id primitive.ObjectID, note string, now time.Time) error {
	return s.update(id, func(t *models.Topic) {
		t.Note = note
		t.UpdatedAt = &now
	})
}

// UpdateTopicURLs replaces both URL lists.
func (s *Store) UpdateTopicURLs(_ context.Context, id primitive.ObjectID, competitor, youtube []models.URLEntry, now time.Time) error {
	return s.update(id, func(t *models.Topic) {
		t.CompetitorURLs = models.URLList{URLs: competitor, LastUpdated: &now}
		t.YoutubeURLs = models.URLList{URLs: youtube, LastUpdated: &now}
		t.UpdatedAt = &now
	})
}

// Writes returns the number of successful topic updates.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// SetErr makes every later call fail with err.
func (s *Store) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Err = err
}

// Ping reports the configured error.
func (s *Store) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Err
}

func (s *Store) update(id primitive.ObjectID, apply func(*models.Topic)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	t := s.find(id)
	if t == nil {
		return db.ErrTopicNotFound
	}
	apply(t)
	s.writes++
	return nil
}
