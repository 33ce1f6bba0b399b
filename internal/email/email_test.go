package email

import (
	"strings"
	"testing"

	"contentdash/internal/config"
)

func TestNewService(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.Config
		wantEnabled bool
	}{
		{
			name: "enabled when all SMTP settings configured",
			cfg: &config.Config{
				SMTPEnabled: true,
				SMTPHost:    "smtp.example.com",
				SMTPPort:    587,
				SMTPFrom:    "noreply@example.com",
			},
			wantEnabled: true,
		},
		{
			name: "disabled when SMTPEnabled is false",
			cfg: &config.Config{
				SMTPHost: "smtp.example.com",
				SMTPFrom: "noreply@example.com",
			},
			wantEnabled: false,
		},
		{
			name: "disabled when SMTPHost is empty",
			cfg: &config.Config{
				SMTPEnabled: true,
				SMTPFrom:    "noreply@example.com",
			},
			wantEnabled: false,
		},
		{
			name:        "disabled with empty config",
			cfg:         &config.Config{},
			wantEnabled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.cfg)
			if svc.IsEnabled() != tt.wantEnabled {
				t.Errorf("IsEnabled() = %v, want %v", svc.IsEnabled(), tt.wantEnabled)
			}
		})
	}
}

func TestService_SendEmail_Disabled(t *testing.T) {
	svc := NewService(&config.Config{})

	if err := svc.SendEmail([]string{"test@example.com"}, "Test", "<p>HTML</p>", "Text"); err != nil {
		t.Errorf("SendEmail() error = %v, want nil when disabled", err)
	}
}

func TestService_SendEmail_NoRecipients(t *testing.T) {
	svc := NewService(&config.Config{
		SMTPEnabled: true,
		SMTPHost:    "smtp.invalid",
		SMTPFrom:    "noreply@example.com",
	})

	if err := svc.SendEmail(nil, "Test", "<p>HTML</p>", "Text"); err != nil {
		t.Errorf("SendEmail() error = %v, want nil without recipients", err)
	}
}

func TestService_BuildMessage(t *testing.T) {
	svc := NewService(&config.Config{
		SMTPFrom:     "noreply@example.com",
		SMTPFromName: "Content Dashboard",
	})

	msg := svc.buildMessage([]string{"a@example.com", "b@example.com"}, "Hello", "<p>hi</p>", "hi")

	for _, want := range []string{
		"From: Content Dashboard <noreply@example.com>\r\n",
		"To: a@example.com, b@example.com\r\n",
		"Subject: Hello\r\n",
		"MIME-Version: 1.0\r\n",
		"boundary=\"" + boundary + "\"",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"<p>hi</p>",
		"--" + boundary + "--\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("buildMessage() missing %q", want)
		}
	}

	if strings.Index(msg, "text/plain") > strings.Index(msg, "text/html") {
		t.Error("buildMessage() text part should precede the HTML part")
	}
}

func TestService_BuildMessage_HTMLOnly(t *testing.T) {
	svc := NewService(&config.Config{SMTPFrom: "noreply@example.com"})

	msg := svc.buildMessage([]string{"a@example.com"}, "Hello", "<p>hi</p>", "")

	if strings.Contains(msg, "text/plain") {
		t.Error("buildMessage() included an empty text part")
	}
	if !strings.Contains(msg, "From: noreply@example.com\r\n") {
		t.Error("buildMessage() should use the bare address without a from name")
	}
}
