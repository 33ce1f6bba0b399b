// Package topics groups, searches and filters topic collections for the
// overview pages. Everything here works on already-fetched items.
package topics

import (
	"slices"
	"sort"
	"strings"

	"contentdash/internal/models"
)

// Category is a top-level group of topics sharing a category.
type Category struct {
	Name     string
	Features []Feature
}

// Feature is a second-level group of topics sharing a main feature.
type Feature struct {
	Name  string
	Items []models.Topic
}

// Option is a distinct filter value and the number of items carrying it.
type Option struct {
	Value string
	Count int
}

// Flatten concatenates the topics of every strategy in document order.
func Flatten(strategies []models.Strategy) []models.Topic {
	var items []models.Topic
	for i := range strategies {
		items = append(items, strategies[i].Items()...)
	}
	return items
}

// Group groups items by category, then by main feature. Both tiers keep the
// order in which each name first appears.
func Group(items []models.Topic) []Category {
	var categories []Category
	categoryIndex := make(map[string]int)
	featureIndex := make(map[string]map[string]int)

	for _, item := range items {
		ci, ok := categoryIndex[item.Category]
		if !ok {
			ci = len(categories)
			categoryIndex[item.Category] = ci
			featureIndex[item.Category] = make(map[string]int)
			categories = append(categories, Category{Name: item.Category})
		}

		cat := &categories[ci]
		fi, ok := featureIndex[item.Category][item.MainFeature]
		if !ok {
			fi = len(cat.Features)
			featureIndex[item.Category][item.MainFeature] = fi
			cat.Features = append(cat.Features, Feature{Name: item.MainFeature})
		}
		cat.Features[fi].Items = append(cat.Features[fi].Items, item)
	}

	return categories
}

// Filter selects items by free-text search and by focus/audience values.
type Filter struct {
	Search   string
	Focus    []string
	Audience []string
}

// Active reports whether the filter would drop anything.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Search) != "" || len(f.Focus) > 0 || len(f.Audience) > 0
}

// Match reports whether an item passes the filter.
//
// The search term must be a case-insensitive substring of one of the item's
// searchable fields. Focus and audience selections are combined with OR
// across the two dimensions: with both set, an item passes when either
// matches. A dimension with no selected values is ignored.
func (f Filter) Match(item models.Topic) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" && !matchesSearch(item, term) {
		return false
	}

	focusSet := len(f.Focus) > 0
	audienceSet := len(f.Audience) > 0
	focusOK := focusSet && slices.Contains(f.Focus, item.Guidelines.Focus)
	audienceOK := audienceSet && slices.Contains(f.Audience, item.Guidelines.TargetAudience)

	switch {
	case focusSet && audienceSet:
		return focusOK || audienceOK
	case focusSet:
		return focusOK
	case audienceSet:
		return audienceOK
	}
	return true
}

// Apply returns the items that pass the filter, keeping their order.
func (f Filter) Apply(items []models.Topic) []models.Topic {
	if !f.Active() {
		return items
	}
	var out []models.Topic
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

func matchesSearch(item models.Topic, term string) bool {
	fields := []string{
		item.SelectedItem,
		item.MainFeature,
		item.Category,
		item.Guidelines.Focus,
		item.Guidelines.TargetAudience,
		item.Guidelines.ContentType,
	}
	fields = append(fields, item.LongTerms...)
	fields = append(fields, item.RelatedTerms...)

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// FocusOptions counts each distinct non-empty focus value.
func FocusOptions(items []models.Topic) []Option {
	return countOptions(items, func(t models.Topic) string { return t.Guidelines.Focus })
}

// AudienceOptions counts each distinct non-empty target audience value.
func AudienceOptions(items []models.Topic) []Option {
	return countOptions(items, func(t models.Topic) string { return t.Guidelines.TargetAudience })
}

// countOptions returns options sorted by count descending, then by value.
func countOptions(items []models.Topic, value func(models.Topic) string) []Option {
	counts := make(map[string]int)
	for _, item := range items {
		if v := value(item); v != "" {
			counts[v]++
		}
	}

	options := make([]Option, 0, len(counts))
	for v, n := range counts {
		options = append(options, Option{Value: v, Count: n})
	}
	sort.Slice(options, func(i, j int) bool {
		if options[i].Count != options[j].Count {
			return options[i].Count > options[j].Count
		}
		return options[i].Value < options[j].Value
	})
	return options
}
