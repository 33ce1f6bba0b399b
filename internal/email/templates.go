package email

import (
	"fmt"
	"html"
	"strings"

	"contentdash/internal/config"
	"contentdash/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

func (t *Templates) baseURL() string {
	return strings.TrimRight(t.cfg.BaseURL, "/")
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2563eb; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; }
        .button { display: inline-block; background: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
    </style>
</head>
<body>
    <div class="header"><h1>%s</h1></div>
    <div class="content">%s</div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`,
		html.EscapeString(title),
		html.EscapeString(t.cfg.BrandName),
		content,
		html.EscapeString(t.cfg.BrandName),
		t.baseURL(), t.baseURL(),
	)
}

// TopicSelected generates the review-queue email for a newly selected topic.
func (t *Templates) TopicSelected(topic *models.Topic, selectedBy string) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Topic selected for review: %s", t.cfg.BrandName, topic.SelectedItem)
	link := fmt.Sprintf("%s/topic/%s", t.baseURL(), topic.ID.Hex())

	if selectedBy == "" {
		selectedBy = "unknown user"
	}

	content := fmt.Sprintf(`
        <p>A topic has been moved into the review queue.</p>

        <div class="info-box">
            <p><span class="label">Topic:</span> %s</p>
            <p><span class="label">Category:</span> %s / %s</p>
            <p><span class="label">Primary keyword:</span> %s</p>
            <p><span class="label">Volume:</span> %s &middot; <span class="label">KD:</span> %s</p>
            <p><span class="label">Selected by:</span> %s</p>
        </div>

        <p style="text-align: center;">
            <a href="%s" class="button">Open Topic</a>
        </p>
    `,
		html.EscapeString(topic.SelectedItem),
		html.EscapeString(topic.Category),
		html.EscapeString(topic.MainFeature),
		html.EscapeString(topic.PrimaryKeyword),
		topic.Metrics.Volume.String(),
		topic.Metrics.KD.String(),
		html.EscapeString(selectedBy),
		link,
	)
	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Topic selected for review

Topic: %s
Category: %s / %s
Primary keyword: %s
Volume: %s, KD: %s
Selected by: %s

Open: %s

--
%s
%s`,
		topic.SelectedItem,
		topic.Category,
		topic.MainFeature,
		topic.PrimaryKeyword,
		topic.Metrics.Volume.String(),
		topic.Metrics.KD.String(),
		selectedBy,
		link,
		t.cfg.BrandName,
		t.baseURL(),
	)

	return
}
