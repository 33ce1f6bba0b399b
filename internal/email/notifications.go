package email

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"contentdash/internal/config"
	"contentdash/internal/models"
)

// TopicGetter loads the topic a notification is about.
type TopicGetter interface {
	GetTopic(ctx context.Context, id primitive.ObjectID) (*models.Topic, error)
}

// Sender delivers rendered messages.
type Sender interface {
	IsEnabled() bool
	SendAsync(to []string, subject, htmlBody, textBody string)
}

// Notifier sends email notifications for review queue changes.
type Notifier struct {
	sender     Sender
	templates  *Templates
	recipients []string
	topics     TopicGetter
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config, topics TopicGetter) *Notifier {
	return &Notifier{
		sender:     NewService(cfg),
		templates:  NewTemplates(cfg),
		recipients: cfg.ReviewNotifyEmails,
		topics:     topics,
	}
}

// NotifyTopicSelected tells the review list that a topic entered the queue.
// The topic is loaded and the mail sent in the background.
func (n *Notifier) NotifyTopicSelected(id primitive.ObjectID, selectedBy string) {
	if !n.sender.IsEnabled() || len(n.recipients) == 0 {
		return
	}

	go n.notifyTopicSelected(id, selectedBy)
}

func (n *Notifier) notifyTopicSelected(id primitive.ObjectID, selectedBy string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	topic, err := n.topics.GetTopic(ctx, id)
	if err != nil {
		slog.Error("failed to load topic for review notification", "topic_id", id.Hex(), "error", err)
		return
	}

	subject, htmlBody, textBody := n.templates.TopicSelected(topic, selectedBy)
	n.sender.SendAsync(n.recipients, subject, htmlBody, textBody)
}
