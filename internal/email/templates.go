package email

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Template names
const (
	TemplateServiceRequestAck     = "service_request_ack"
	TemplateServiceRequestAlert   = "service_request_alert"
	TemplateApplicantAccepted     = "applicant_accepted"
	TemplateApplicantRejected     = "applicant_rejected"
	TemplateApplicantHired        = "applicant_hired"
	TemplateTechnicianActivated   = "technician_activated"
	TemplateTechnicianDeactivated = "technician_deactivated"
	TemplateContractEnded         = "technician_contract_ended"
)

//go:embed templates/*.html
var builtinTemplates embed.FS

// TemplateManager implements TemplateRenderer
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplateManager returns a manager preloaded with the built-in
// templates. A non-empty overrideDir replaces templates by file name.
func NewDefaultTemplateManager(overrideDir string) (*TemplateManager, error) {
	tm := NewTemplateManager()
	if err := tm.loadFS(builtinTemplates, "templates"); err != nil {
		return nil, err
	}
	if overrideDir != "" {
		if err := tm.LoadTemplates(overrideDir); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// LoadTemplates loads every *.html file under dirPath.
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return tm.loadFS(os.DirFS(dirPath), ".")
}

func (tm *TemplateManager) loadFS(fsys fs.FS, root string) error {
	return fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		templateName := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(templateName, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}

		return nil
	})
}

func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}

	return names
}
