package models

import (
	"time"

	"gorm.io/datatypes"
)

type JobApplicant struct {
	BaseModel
	SoftDelete
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	LastName    string     `gorm:"size:100;not null" json:"last_name"`
	Email       string     `gorm:"size:255;not null;uniqueIndex:idx_job_applicants_email,where:deleted_at IS NULL" json:"email"`
	Phone       *string    `gorm:"size:50" json:"phone"`
	Address     *string    `gorm:"size:255" json:"address"`
	City        *string    `gorm:"size:100" json:"city"`
	State       *string    `gorm:"size:100" json:"state"`
	Zip         *string    `gorm:"size:20" json:"zip"`
	Age         int        `gorm:"not null" json:"age"`
	Birthdate   *time.Time `json:"birthdate"`
	Nationality *string    `gorm:"size:100" json:"nationality"`

	// Exactly one of SocialSecurityNumber / EINNumber is set, matching SocialSecurity.
	SocialSecurity       *TaxIDKind `gorm:"type:varchar(3)" json:"socialsecurity"`
	SocialSecurityNumber *string    `gorm:"size:11;uniqueIndex:idx_job_applicants_ssn,where:deleted_at IS NULL" json:"socialsecurity_number"`
	EINNumber            *string    `gorm:"column:ein_number;size:10;uniqueIndex:idx_job_applicants_ein,where:deleted_at IS NULL" json:"ein_number"`

	Licence           bool       `gorm:"not null;default:false" json:"licence"`
	LicenceNumber     *string    `gorm:"size:50" json:"licence_number"`
	LicenceIssuedDate *time.Time `json:"licence_issued_date"`
	LicenceExpireDate *time.Time `json:"licence_expire_date"`
	LicenceIssuedCity *string    `gorm:"size:100" json:"licence_issued_city"`

	Days             datatypes.JSONSlice[string] `json:"days"`
	StartTime        *string                     `gorm:"size:10" json:"start_time"`
	EndTime          *string                     `gorm:"size:10" json:"end_time"`
	StartDate        *time.Time                  `json:"start_date"`
	WorkPeriod       *string                     `gorm:"size:20" json:"workperiod"`
	WorkPeriodMonths *int                        `json:"workperiod_months"`
	WorkHours        *int                        `json:"work_hours"`
	Smoke            bool                        `gorm:"not null;default:false" json:"smoke"`
	Transport        bool                        `gorm:"not null;default:false" json:"transport"`

	Status          ApplicantStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Hire            bool            `gorm:"not null;default:false" json:"hire"`
	UserID          *string         `gorm:"type:uuid;index" json:"user_id"`
	SubmittedByID   *string         `gorm:"type:uuid;index" json:"submitted_by_id"`
	AcceptedAt      *time.Time      `json:"accepted_at"`
	RejectedAt      *time.Time      `json:"rejected_at"`
	HiredAt         *time.Time      `json:"hired_at"`
	RejectionReason *string         `gorm:"type:text" json:"rejection_reason"`
}

func (a *JobApplicant) FullName() string {
	return a.FirstName + " " + a.LastName
}

// IsHired reports whether the applicant already produced a technician account.
func (a *JobApplicant) IsHired() bool {
	return a.Status == ApplicantStatusHired || a.Hire || a.UserID != nil
}
