package handlers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"slices"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"contentdash/internal/models"
)

var notePolicy = bluemonday.UGCPolicy()

// TemplateFuncs returns the helpers available to every view.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown":    Markdown,
		"statusClass": StatusClass,
		"toggleLabel": ToggleLabel,
		"formatDate":  FormatDate,
		"json":        JSONScript,
		"contains":    contains,
	}
}

// Markdown renders a note to sanitized HTML.
func Markdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		slog.Warn("failed to render markdown", "error", err)
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(notePolicy.SanitizeBytes(buf.Bytes()))
}

// StatusClass returns the badge colour classes for a status.
func StatusClass(status string) string {
	switch status {
	case models.StatusSelected:
		return "bg-blue-100 text-blue-800"
	case models.StatusActive, "":
		return "bg-green-100 text-green-800"
	default:
		return "bg-gray-100 text-gray-800"
	}
}

// ToggleLabel returns the review toggle caption for a status.
func ToggleLabel(status string) string {
	if status == models.StatusActive || status == "" {
		return "Select for Review"
	}
	return "Mark as Active"
}

// FormatDate formats an optional timestamp for display.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// JSONScript encodes v for embedding in a <script type="application/json">
// element. encoding/json escapes <, > and & so the output cannot close the
// element.
func JSONScript(v any) (template.JS, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(data), nil
}

func contains(values []string, v string) bool {
	return slices.Contains(values, v)
}
