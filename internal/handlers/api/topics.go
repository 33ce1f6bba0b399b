package api

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"contentdash/internal/config"
	"contentdash/internal/db"
	"contentdash/internal/metrics"
	"contentdash/internal/middleware"
	"contentdash/internal/models"
	"contentdash/internal/validation"
)

// TopicWriter applies the single-field topic updates.
type TopicWriter interface {
	UpdateTopicStatus(ctx context.Context, id primitive.ObjectID, status string) error
	UpdateTopicNote(ctx context.Context, id primitive.ObjectID, note string, now time.Time) error
	UpdateTopicURLs(ctx context.Context, id primitive.ObjectID, competitor, youtube []models.URLEntry, now time.Time) error
}

// SelectionNotifier is told when a topic enters the review queue.
type SelectionNotifier interface {
	NotifyTopicSelected(id primitive.ObjectID, selectedBy string)
}

// TopicHandler handles the topic update API.
type TopicHandler struct {
	store    TopicWriter
	notifier SelectionNotifier
	cfg      *config.Config
	now      func() time.Time
}

// NewTopicHandler creates a new topic handler. notifier may be nil.
func NewTopicHandler(store TopicWriter, notifier SelectionNotifier, cfg *config.Config) *TopicHandler {
	return &TopicHandler{store: store, notifier: notifier, cfg: cfg, now: time.Now}
}

type statusRequest struct {
	TopicID   string `json:"topicId"`
	NewStatus string `json:"newStatus"`
}

type noteRequest struct {
	TopicID string `json:"topicId"`
	Note    string `json:"note"`
}

type urlsRequest struct {
	TopicID        string            `json:"topicId"`
	CompetitorURLs []models.URLEntry `json:"competitorUrls"`
	YoutubeURLs    []models.URLEntry `json:"youtubeUrls"`
}

// UpdateStatus sets a topic's status. The value is stored verbatim.
func (h *TopicHandler) UpdateStatus(c fiber.Ctx) error {
	var req statusRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return h.reject(c, "status", "Invalid request body")
	}
	if req.NewStatus == "" {
		return h.reject(c, "status", "Topic ID and status are required")
	}
	id, msg := parseTopicID(req.TopicID)
	if msg != "" {
		return h.reject(c, "status", msg)
	}

	if err := h.store.UpdateTopicStatus(c.Context(), id, req.NewStatus); err != nil {
		return h.storeError(c, "status", err)
	}
	metrics.RecordTopicUpdate("status", metrics.OutcomeSuccess)

	if req.NewStatus == models.StatusSelected && h.notifier != nil {
		var by string
		if session, ok := middleware.SessionFrom(c); ok {
			by = session.Email
		}
		h.notifier.NotifyTopicSelected(id, by)
	}

	return c.JSON(models.StatusUpdateResponse{
		Message: "Status updated successfully",
		Status:  req.NewStatus,
	})
}

// UpdateNote sets a topic's note and stamps updated_at.
func (h *TopicHandler) UpdateNote(c fiber.Ctx) error {
	var req noteRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return h.reject(c, "note", "Invalid request body")
	}
	id, msg := parseTopicID(req.TopicID)
	if msg != "" {
		return h.reject(c, "note", msg)
	}

	if err := h.store.UpdateTopicNote(c.Context(), id, req.Note, h.now()); err != nil {
		return h.storeError(c, "note", err)
	}
	metrics.RecordTopicUpdate("note", metrics.OutcomeSuccess)

	return c.JSON(models.NoteUpdateResponse{
		Message: "Note updated successfully",
		Note:    req.Note,
	})
}

// UpdateURLs replaces a topic's competitor and YouTube URL lists.
func (h *TopicHandler) UpdateURLs(c fiber.Ctx) error {
	var req urlsRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return h.reject(c, "urls", "Invalid request body")
	}
	id, msg := parseTopicID(req.TopicID)
	if msg != "" {
		return h.reject(c, "urls", msg)
	}

	competitor, msg := normalizeEntries(req.CompetitorURLs)
	if msg != "" {
		return h.reject(c, "urls", "Competitor URL: "+msg)
	}
	youtube, msg := normalizeEntries(req.YoutubeURLs)
	if msg != "" {
		return h.reject(c, "urls", "YouTube URL: "+msg)
	}

	if err := h.store.UpdateTopicURLs(c.Context(), id, competitor, youtube, h.now()); err != nil {
		return h.storeError(c, "urls", err)
	}
	metrics.RecordTopicUpdate("urls", metrics.OutcomeSuccess)

	return c.JSON(models.URLUpdateResponse{
		Message:        "URLs updated successfully",
		CompetitorURLs: competitor,
		YoutubeURLs:    youtube,
	})
}

// normalizeEntries validates each URL and gives new entries an id. It
// returns a non-empty message for the first invalid entry.
func normalizeEntries(entries []models.URLEntry) ([]models.URLEntry, string) {
	out := make([]models.URLEntry, 0, len(entries))
	for _, e := range entries {
		if valid, msg := validation.ValidateURL(e.URL); !valid {
			return nil, msg
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		out = append(out, e)
	}
	return out, ""
}

// parseTopicID returns the id or the message explaining why it is unusable.
func parseTopicID(raw string) (primitive.ObjectID, string) {
	if raw == "" {
		return primitive.NilObjectID, "Topic ID is required"
	}
	id, err := db.ParseTopicID(raw)
	if err != nil {
		return primitive.NilObjectID, "Invalid topic ID"
	}
	return id, ""
}

func (h *TopicHandler) reject(c fiber.Ctx, field, message string) error {
	metrics.RecordTopicUpdate(field, metrics.OutcomeInvalidRequest)
	return jsonError(c, fiber.StatusBadRequest, message)
}

func (h *TopicHandler) storeError(c fiber.Ctx, field string, err error) error {
	switch {
	case errors.Is(err, db.ErrTopicNotFound):
		metrics.RecordTopicUpdate(field, metrics.OutcomeNotFound)
		return jsonError(c, fiber.StatusNotFound, "Topic not found")
	case errors.Is(err, db.ErrTimeout):
		metrics.RecordTopicUpdate(field, metrics.OutcomeError)
		return internalError(c, h.cfg.IsDev(), "Database request timed out", err)
	default:
		metrics.RecordTopicUpdate(field, metrics.OutcomeError)
		return internalError(c, h.cfg.IsDev(), "Error updating topic", err)
	}
}
