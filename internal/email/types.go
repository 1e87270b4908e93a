package email

type Attachment struct {
	Name        string
	Content     []byte
	ContentType string
}

// Email is a transport-independent message. Bcc recipients never appear in
// the rendered headers.
type Email struct {
	From        string
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	Body        string
	HTMLBody    string
	Attachments []Attachment
}

// Recipients returns every envelope recipient.
func (e *Email) Recipients() []string {
	out := make([]string, 0, len(e.To)+len(e.Cc)+len(e.Bcc))
	out = append(out, e.To...)
	out = append(out, e.Cc...)
	return append(out, e.Bcc...)
}

// TemplateData is passed to email templates.
type TemplateData map[string]interface{}
