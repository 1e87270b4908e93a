package email

import "errors"

var ErrNoRecipients = errors.New("email has no recipients")

// Provider sends email.
type Provider interface {
	// Send delivers a single message.
	Send(email *Email) error

	// SendTemplate renders templateName with data and sends it to the given recipients.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate checks the provider configuration.
	Validate() error

	Close() error
}

// TemplateRenderer renders named templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}
