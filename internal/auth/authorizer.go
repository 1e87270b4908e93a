package auth

import (
	"sort"
	"strings"

	"poolservice_backend/internal/models"
)

type Action string
type Resource string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionManage Action = "manage"
)

const (
	ResourceUsers            Resource = "users"
	ResourceTechnicians      Resource = "technicians"
	ResourceClients          Resource = "clients"
	ResourceClientCategories Resource = "client_categories"
	ResourceServiceRequests  Resource = "service_requests"
	ResourceTasks            Resource = "tasks"
	ResourceAssignedTasks    Resource = "assigned_tasks"
	ResourceJobApplicants    Resource = "job_applicants"
	ResourceMessages         Resource = "messages"
	ResourceEmailBlasts      Resource = "email_blasts"
	ResourceContent          Resource = "content"
	ResourceVisitors         Resource = "visitors"
)

// Capability formats a resource/action pair as "resource:action".
func Capability(resource Resource, action Action) string {
	return string(resource) + ":" + string(action)
}

// CapabilityStrategy computes the capability set of an identity.
type CapabilityStrategy interface {
	Capabilities(id Identity) []string
}

// RoleCapabilities grants capabilities by role. Entries may be "*",
// "resource:*" or "resource:action".
type RoleCapabilities map[models.UserRole][]string

func (r RoleCapabilities) Capabilities(id Identity) []string {
	return r[id.Role]
}

// DefaultRoleCapabilities is the role table of the back office.
var DefaultRoleCapabilities = RoleCapabilities{
	models.UserRoleAdmin: {"*"},
	models.UserRoleManager: {
		"users:view", "users:update",
		"technicians:*",
		"clients:*",
		"client_categories:*",
		"service_requests:*",
		"tasks:*",
		"assigned_tasks:*",
		"job_applicants:*",
		"messages:*",
		"email_blasts:view", "email_blasts:create",
		"content:*",
		"visitors:view",
	},
	models.UserRoleTechnician: {
		"assigned_tasks:view", "assigned_tasks:update",
		"tasks:view",
	},
	models.UserRoleUser: {
		"job_applicants:create",
		"service_requests:create",
	},
}

// Authorizer answers canPerform(identity, action, resource) questions.
type Authorizer struct {
	strategies []CapabilityStrategy
}

func NewAuthorizer(strategies ...CapabilityStrategy) *Authorizer {
	if len(strategies) == 0 {
		strategies = []CapabilityStrategy{DefaultRoleCapabilities}
	}
	return &Authorizer{strategies: strategies}
}

// Can reports whether id may perform action on resource.
func (a *Authorizer) Can(id Identity, action Action, resource Resource) bool {
	if id.UserID == "" {
		return false
	}
	want := Capability(resource, action)
	for _, s := range a.strategies {
		for _, c := range s.Capabilities(id) {
			if grants(c, resource, want) {
				return true
			}
		}
	}
	return false
}

// Capabilities returns the sorted, de-duplicated capability list of id.
func (a *Authorizer) Capabilities(id Identity) []string {
	seen := make(map[string]struct{})
	for _, s := range a.strategies {
		for _, c := range s.Capabilities(id) {
			seen[c] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func grants(capability string, resource Resource, want string) bool {
	switch {
	case capability == "*":
		return true
	case capability == want:
		return true
	case strings.HasSuffix(capability, ":*"):
		return strings.TrimSuffix(capability, ":*") == string(resource)
	default:
		return false
	}
}
