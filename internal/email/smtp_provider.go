package email

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// SMTPProvider delivers mail through gomail.
type SMTPProvider struct {
	config   *SMTPConfig
	dialer   *gomail.Dialer
	renderer TemplateRenderer
}

func NewSMTPProvider(config *SMTPConfig, renderer TemplateRenderer) *SMTPProvider {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	dialer.TLSConfig = &tls.Config{ServerName: config.Host}
	// Port 465 speaks implicit TLS, everything else upgrades with STARTTLS.
	dialer.SSL = config.Port == 465

	return &SMTPProvider{
		config:   config,
		dialer:   dialer,
		renderer: renderer,
	}
}

func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(email.Recipients()) == 0 {
		return ErrNoRecipients
	}

	msg := p.buildMessage(email)
	if err := p.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	html, err := p.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: html,
	})
}

func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return errors.New("smtp host is not configured")
	}
	if p.config.Port <= 0 {
		return errors.New("smtp port is not configured")
	}
	if p.config.FromEmail == "" {
		return errors.New("sender address is not configured")
	}
	return nil
}

func (p *SMTPProvider) Close() error {
	return nil
}

func (p *SMTPProvider) buildMessage(email *Email) *gomail.Message {
	m := gomail.NewMessage()

	from := email.From
	if from == "" {
		from = m.FormatAddress(p.config.FromEmail, p.config.FromName)
	}
	m.SetHeader("From", from)

	if len(email.To) > 0 {
		m.SetHeader("To", email.To...)
	}
	if len(email.Cc) > 0 {
		m.SetHeader("Cc", email.Cc...)
	}
	// gomail uses Bcc for the envelope only and drops the header when writing.
	if len(email.Bcc) > 0 {
		m.SetHeader("Bcc", email.Bcc...)
	}
	m.SetHeader("Subject", email.Subject)

	switch {
	case email.HTMLBody != "" && email.Body != "":
		m.SetBody("text/plain", email.Body)
		m.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		m.SetBody("text/html", email.HTMLBody)
	default:
		m.SetBody("text/plain", email.Body)
	}

	for _, a := range email.Attachments {
		content := a.Content
		m.Attach(a.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(content))
			return err
		}))
	}

	return m
}
