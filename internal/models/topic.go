package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status constants
const (
	StatusActive   = "active"
	StatusSelected = "selected"
)

// Strategy is the per-client document that owns a collection of topics.
type Strategy struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id" yaml:"-"`
	ClientData ClientData         `bson:"clientData" json:"clientData" yaml:"clientData"`
}

// ClientData wraps the strategy payload as it is stored.
type ClientData struct {
	ContentStrategy ContentStrategy `bson:"contentStrategy" json:"contentStrategy" yaml:"contentStrategy"`
}

// ContentStrategy holds the nested topic array.
type ContentStrategy struct {
	Items []Topic `bson:"items" json:"items" yaml:"items"`
}

// Items returns the strategy's topics.
func (s *Strategy) Items() []Topic {
	return s.ClientData.ContentStrategy.Items
}

// Topic is one SEO content item nested inside a strategy.
type Topic struct {
	ID           primitive.ObjectID `bson:"_id" json:"id" yaml:"-"`
	Category     string             `bson:"category" json:"category" yaml:"category"`
	MainFeature  string             `bson:"mainFeature" json:"mainFeature" yaml:"mainFeature"`
	SelectedItem string             `bson:"selectedItem" json:"selectedItem" yaml:"selectedItem"`

	Metrics Metrics `bson:"metrics" json:"metrics" yaml:"metrics"`

	PrimaryKeyword string   `bson:"primaryKeyword,omitempty" json:"primaryKeyword" yaml:"primaryKeyword"`
	LongTerms      []string `bson:"longTerms,omitempty" json:"longTerms" yaml:"longTerms"`
	RelatedTerms   []string `bson:"relatedTerms,omitempty" json:"relatedTerms" yaml:"relatedTerms"`

	Guidelines Guidelines `bson:"contentGuidelines" json:"contentGuidelines" yaml:"contentGuidelines"`
	FAQs       []string   `bson:"faqs,omitempty" json:"faqs" yaml:"faqs"`

	Status    string     `bson:"status,omitempty" json:"status" yaml:"status"`
	Note      string     `bson:"note,omitempty" json:"note" yaml:"note"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty" yaml:"-"`

	CompetitorURLs URLList `bson:"competitorUrls,omitempty" json:"competitorUrls" yaml:"competitorUrls"`
	YoutubeURLs    URLList `bson:"youtubeUrls,omitempty" json:"youtubeUrls" yaml:"youtubeUrls"`
}

// Metrics are the keyword research numbers attached to a topic.
type Metrics struct {
	Volume     Numeric `bson:"volume" json:"volume" yaml:"volume"`
	KD         Numeric `bson:"kd" json:"kd" yaml:"kd"`
	Difficulty string  `bson:"difficulty,omitempty" json:"difficulty" yaml:"difficulty"`
	Priority   string  `bson:"priority,omitempty" json:"priority" yaml:"priority"`
}

// Guidelines describe how the content for a topic should be written.
type Guidelines struct {
	Focus          string   `bson:"focus,omitempty" json:"focus" yaml:"focus"`
	TargetAudience string   `bson:"targetAudience,omitempty" json:"targetAudience" yaml:"targetAudience"`
	ContentType    string   `bson:"contentType,omitempty" json:"contentType" yaml:"contentType"`
	Includes       []string `bson:"includes,omitempty" json:"includes" yaml:"includes"`
}

// URLList is a set of reference URLs plus the time it was last saved.
type URLList struct {
	URLs        []URLEntry `bson:"urls" json:"urls" yaml:"urls"`
	LastUpdated *time.Time `bson:"lastUpdated,omitempty" json:"lastUpdated,omitempty" yaml:"-"`
}

// URLEntry is a single reference URL with free-text notes.
type URLEntry struct {
	ID    string `bson:"id" json:"id" yaml:"id"`
	URL   string `bson:"url" json:"url" yaml:"url"`
	Notes string `bson:"notes" json:"notes" yaml:"notes"`
}

// EffectiveStatus returns the stored status, defaulting to active.
func (t *Topic) EffectiveStatus() string {
	if t.Status == "" {
		return StatusActive
	}
	return t.Status
}

// IsSelected returns true if the topic is in the review queue.
func (t *Topic) IsSelected() bool {
	return t.Status == StatusSelected
}

// ToggledStatus returns the status the review toggle moves the topic to.
func (t *Topic) ToggledStatus() string {
	if t.EffectiveStatus() == StatusActive {
		return StatusSelected
	}
	return StatusActive
}
