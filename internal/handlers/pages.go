package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"contentdash/internal/config"
	"contentdash/internal/db"
	"contentdash/internal/topics"
)

// PageHandler renders the server-side pages.
type PageHandler struct {
	store TopicReader
	cfg   *config.Config
}

// NewPageHandler creates a new page handler.
func NewPageHandler(store TopicReader, cfg *config.Config) *PageHandler {
	return &PageHandler{store: store, cfg: cfg}
}

// Home renders the landing page with the login form.
func (h *PageHandler) Home(c fiber.Ctx) error {
	return c.Render("index", MergeBranding(c, fiber.Map{
		"Title":    "Welcome",
		"Workflow": workflowSteps,
	}, h.cfg))
}

// Dashboard renders the grouped topic overview. Search and filters come
// from the q, focus and audience query parameters.
func (h *PageHandler) Dashboard(c fiber.Ctx) error {
	filter := filterFromQuery(c)
	data := fiber.Map{
		"Title":  "Content Strategy Dashboard",
		"Filter": filter,
	}

	strategies, err := h.store.ListStrategies(c.Context(), true)
	if err != nil {
		slog.Error("failed to fetch strategies", "error", err)
		data["LoadError"] = "Topics could not be loaded. Please try again."
	}

	items := topics.Flatten(strategies)
	data["Total"] = len(items)
	data["FocusOptions"] = topics.FocusOptions(items)
	data["AudienceOptions"] = topics.AudienceOptions(items)

	matched := filter.Apply(items)
	data["Matched"] = len(matched)
	data["Categories"] = topics.Group(matched)

	return c.Render("dashboard", MergeBranding(c, data, h.cfg))
}

// SelectedTopics renders the review queue.
func (h *PageHandler) SelectedTopics(c fiber.Ctx) error {
	data := fiber.Map{"Title": "Selected Topics for Review"}

	selected, err := h.store.ListSelectedTopics(c.Context())
	if err != nil {
		slog.Error("failed to fetch selected topics", "error", err)
		data["LoadError"] = "Selected topics could not be loaded. Please try again."
	}
	data["Topics"] = selected

	return c.Render("selected", MergeBranding(c, data, h.cfg))
}

// Topic renders a single topic's detail and edit page.
func (h *PageHandler) Topic(c fiber.Ctx) error {
	id, err := db.ParseTopicID(c.Params("id"))
	if err != nil {
		return h.topicNotFound(c)
	}

	topic, err := h.store.GetTopic(c.Context(), id)
	if errors.Is(err, db.ErrTopicNotFound) {
		return h.topicNotFound(c)
	}
	if err != nil {
		return err
	}

	return c.Render("topic", MergeBranding(c, fiber.Map{
		"Title": topic.MainFeature,
		"Topic": topic,
	}, h.cfg))
}

func (h *PageHandler) topicNotFound(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("error", MergeBranding(c, fiber.Map{
		"Title":   "Not Found",
		"Message": "Topic not found",
	}, h.cfg))
}

// Healthz reports whether the store is reachable.
func Healthz(store Pinger) fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := store.Ping(c.Context()); err != nil {
			slog.Warn("health check failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

func filterFromQuery(c fiber.Ctx) topics.Filter {
	args := c.Request().URI().QueryArgs()
	return topics.Filter{
		Search:   strings.TrimSpace(c.Query("q")),
		Focus:    queryValues(args.PeekMulti("focus")),
		Audience: queryValues(args.PeekMulti("audience")),
	}
}

func queryValues(raw [][]byte) []string {
	var out []string
	for _, v := range raw {
		if s := strings.TrimSpace(string(v)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// WorkflowStep is one card of the landing page workflow grid.
type WorkflowStep struct {
	Title       string
	Description string
}

var workflowSteps = []WorkflowStep{
	{"Topic Identification and Categorization", "Strategic content planning and topic organization to establish clear content hierarchies and categories."},
	{"Keyword Research for Each Page", "In-depth keyword analysis to identify the most valuable search terms and user intent for each content piece."},
	{"Create Content Outlines", "Develop comprehensive content structures and detailed outlines to guide content creation."},
	{"Generate Initial Content Drafts", "Create high-quality first drafts based on research, outlines, and content strategy guidelines."},
	{"Enrich Content with Authority", "Enhance content value with external links, multimedia, and authoritative sources."},
	{"Final Review and Publishing", "Quality assurance review, design integration, and strategic content distribution across channels."},
}
