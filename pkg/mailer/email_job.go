package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either a rendered body (Subject/Text/HTML) or a Template with Data is expected.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome", "account_deactivated"
	Data     map[string]any `json:"data,omitempty"`
}
