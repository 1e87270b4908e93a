package email

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplates_RenderAll(t *testing.T) {
	tm, err := NewDefaultTemplateManager("")
	require.NoError(t, err)

	data := TemplateData{
		"Name": "Jo", "Email": "jo@example.com", "Password": "Secret123",
		"LoginURL": "https://pools.example.com/login", "CompanyName": "Pool Co",
		"Service": "Weekly cleaning", "Description": "Green water", "Phone": "555", "Zip": "33101",
	}
	for _, name := range []string{
		TemplateServiceRequestAck, TemplateServiceRequestAlert,
		TemplateApplicantAccepted, TemplateApplicantRejected, TemplateApplicantHired,
		TemplateTechnicianActivated, TemplateTechnicianDeactivated, TemplateContractEnded,
	} {
		out, err := tm.Render(name, data)
		require.NoError(t, err, name)
		assert.Contains(t, out, "Jo", name)
	}
}

func TestRejectedTemplate_ReasonIsOptional(t *testing.T) {
	tm, err := NewDefaultTemplateManager("")
	require.NoError(t, err)

	with, err := tm.Render(TemplateApplicantRejected, TemplateData{"Name": "Jo", "Reason": "No licence"})
	require.NoError(t, err)
	assert.Contains(t, with, "Reason: No licence")

	without, err := tm.Render(TemplateApplicantRejected, TemplateData{"Name": "Jo"})
	require.NoError(t, err)
	assert.NotContains(t, without, "Reason:")
}

func TestTemplateOverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TemplateApplicantAccepted+".html"), []byte("custom {{.Name}}"), 0o600))

	tm, err := NewDefaultTemplateManager(dir)
	require.NoError(t, err)

	out, err := tm.Render(TemplateApplicantAccepted, TemplateData{"Name": "Jo"})
	require.NoError(t, err)
	assert.Equal(t, "custom Jo", out)
}

func TestMemoryProvider(t *testing.T) {
	tm, err := NewDefaultTemplateManager("")
	require.NoError(t, err)
	p := NewMemoryProvider(tm)

	assert.ErrorIs(t, p.Send(&Email{Subject: "nobody"}), ErrNoRecipients)

	require.NoError(t, p.Send(&Email{To: []string{"office@example.com"}, Bcc: []string{"a@example.com", "b@example.com"}, Subject: "Blast"}))
	require.NoError(t, p.SendTemplate([]string{"jo@example.com"}, "Accepted", TemplateApplicantAccepted, TemplateData{"Name": "Jo"}))

	assert.Len(t, p.Sent(), 2)
	assert.Len(t, p.SentTo("b@example.com"), 1)
	assert.Len(t, p.SentTo("jo@example.com"), 1)

	p.FailWith = errors.New("smtp down")
	assert.Error(t, p.Send(&Email{To: []string{"x@example.com"}}))
	p.Reset()
	assert.Empty(t, p.Sent())
}

func TestSMTPProvider_BuildMessageHidesBcc(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "office@example.com", FromName: "Pool Co"}, NewTemplateManager())
	require.NoError(t, p.Validate())

	msg := p.buildMessage(&Email{
		To:       []string{"office@example.com"},
		Bcc:      []string{"secret@example.com"},
		Subject:  "Spring opening",
		HTMLBody: "<p>Hello</p>",
	})

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Subject: Spring opening")
	assert.NotContains(t, buf.String(), "secret@example.com")
}

func TestSMTPProvider_ValidateRequiresHost(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Port: 587}, NewTemplateManager())
	assert.Error(t, p.Validate())
}
