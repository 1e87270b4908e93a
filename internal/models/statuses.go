package models

import "strings"

type UserRole string
type ApplicantStatus string
type AssignedTaskStatus string
type BlastStatus string
type TaxIDKind string

const (
	UserRoleAdmin      UserRole = "Administrator"
	UserRoleManager    UserRole = "Manager"
	UserRoleTechnician UserRole = "Technician"
	UserRoleUser       UserRole = "User"

	ApplicantStatusPending  ApplicantStatus = "pending"
	ApplicantStatusAccepted ApplicantStatus = "accepted"
	ApplicantStatusRejected ApplicantStatus = "rejected"
	ApplicantStatusHired    ApplicantStatus = "hired"

	AssignedTaskStatusAssigned   AssignedTaskStatus = "assigned"
	AssignedTaskStatusInProgress AssignedTaskStatus = "in_progress"
	AssignedTaskStatusCompleted  AssignedTaskStatus = "completed"

	BlastStatusPending BlastStatus = "pending"
	BlastStatusSent    BlastStatus = "sent"
	BlastStatusFailed  BlastStatus = "failed"

	TaxIDSSN TaxIDKind = "SSN"
	TaxIDEIN TaxIDKind = "EIN"
)

// TaskStatusPending is the initial status of a task. Task status is free-form
// after that.
const TaskStatusPending = "pending"

var UserRoles = []UserRole{UserRoleAdmin, UserRoleManager, UserRoleTechnician, UserRoleUser}

func (r UserRole) Valid() bool {
	for _, role := range UserRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Weekdays accepted in an applicant's availability.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ParseWeekday returns the canonical name of a full or three-letter day
// ("tue", "Tuesday"), case-insensitive.
func ParseWeekday(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, day := range Weekdays {
		if strings.EqualFold(s, day) || strings.EqualFold(s, day[:3]) {
			return day, true
		}
	}
	return "", false
}

// WorkPeriods accepted by the public application form.
var WorkPeriods = []string{"full-time", "part-time", "temporary", "seasonal"}
