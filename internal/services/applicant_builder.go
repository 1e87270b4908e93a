package services

import (
	"strings"
	"time"

	"poolservice_backend/internal/models"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/internal/validator"
	"poolservice_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// applicationDraft is the common shape of the public and portal
// application forms after struct validation.
type applicationDraft struct {
	FirstName, LastName, Email string
	Phone, Address, City       string
	State, Zip                 string
	Age                        int
	Birthdate, Nationality     string

	SocialSecurity string
	SSN, EIN       string

	Licence                                            string
	LicenceNumber, IssuedDate, ExpireDate, LicenceCity string

	Days                        []string
	StartTime, EndTime          string
	StartDate                   string
	WorkPeriod                  string
	WorkPeriodMonths, WorkHours int
	Smoke, Transport            bool
}

func draftFromPublic(f *dto.PublicApplicationForm) *applicationDraft {
	return &applicationDraft{
		FirstName: f.FirstName, LastName: f.LastName, Email: f.Email,
		Phone: f.Phone, Address: f.Address, City: f.City, State: f.State, Zip: f.Zip,
		Age: f.Age, Birthdate: f.Birthdate, Nationality: f.Nationality,
		SocialSecurity: f.SocialSecurity, SSN: f.SocialSecurityNumber, EIN: f.EINNumber,
		Licence: f.Licence, LicenceNumber: f.LicenceNumber,
		IssuedDate: f.LicenceIssuedDate, ExpireDate: f.LicenceExpireDate, LicenceCity: f.LicenceIssuedCity,
		Days: f.Days, StartTime: f.StartTime, EndTime: f.EndTime, StartDate: f.StartDate,
		WorkPeriod: f.WorkPeriod,
		Smoke:      f.Smoke, Transport: f.Transport,
	}
}

func draftFromPortal(f *dto.PortalApplicationForm) *applicationDraft {
	return &applicationDraft{
		FirstName: f.FirstName, LastName: f.LastName, Email: f.Email,
		Phone: f.Phone, Address: f.Address, City: f.City, State: f.State, Zip: f.Zip,
		Age: f.Age, Birthdate: f.Birthdate, Nationality: f.Nationality,
		SocialSecurity: f.SocialSecurity, SSN: f.SocialSecurityNumber, EIN: f.EINNumber,
		Licence: f.Licence, LicenceNumber: f.LicenceNumber,
		IssuedDate: f.LicenceIssuedDate, ExpireDate: f.LicenceExpireDate, LicenceCity: f.LicenceIssuedCity,
		Days: f.Days, StartTime: f.StartTime, EndTime: f.EndTime, StartDate: f.StartDate,
		WorkPeriodMonths: f.WorkPeriod, WorkHours: f.WorkHours,
		Smoke: f.Smoke, Transport: f.Transport,
	}
}

func (d *applicationDraft) hasLicence() bool {
	return strings.EqualFold(strings.TrimSpace(d.Licence), "yes")
}

// checkDraft runs the conditional rules that struct tags cannot express:
// the tax id number matching the chosen kind, and the licence details pass.
func checkDraft(v *validator.Validator, d *applicationDraft) error {
	fields := map[string]string{}

	switch models.TaxIDKind(d.SocialSecurity) {
	case models.TaxIDSSN:
		if strings.TrimSpace(d.SSN) == "" {
			fields["socialsecurityNumber"] = "This field is required"
		}
	case models.TaxIDEIN:
		if strings.TrimSpace(d.EIN) == "" {
			fields["einNumber"] = "This field is required"
		}
	}

	if d.hasLicence() {
		details := dto.LicenceDetails{
			LicenceNumber: strings.TrimSpace(d.LicenceNumber),
			IssuedDate:    strings.TrimSpace(d.IssuedDate),
			ExpireDate:    strings.TrimSpace(d.ExpireDate),
			IssuedCity:    strings.TrimSpace(d.LicenceCity),
		}
		if err := v.Validate(details); err != nil {
			vErr, ok := err.(*validator.ValidationError)
			if !ok {
				return apperrors.InternalError(err)
			}
			for k, msg := range vErr.Errors {
				fields[k] = msg
			}
		} else if details.ExpireDate <= details.IssuedDate {
			fields["expiredate"] = "Must be after the issue date"
		}
	}

	if len(fields) > 0 {
		return apperrors.ValidationError(fields)
	}
	return nil
}

// checkUnique reports email and tax id numbers already on file as a 409.
func checkUnique(db *gorm.DB, repo repositories.JobApplicantRepository, a *models.JobApplicant) error {
	fields := map[string]string{}

	exists, err := repo.ExistsByEmail(db, a.Email)
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	if exists {
		fields["email"] = "An application with this email already exists"
	}

	if a.SocialSecurityNumber != nil {
		exists, err = repo.ExistsBySSN(db, *a.SocialSecurityNumber)
		if err != nil {
			return apperrors.DatabaseError(err)
		}
		if exists {
			fields["socialsecurityNumber"] = "This social security number is already registered"
		}
	}
	if a.EINNumber != nil {
		exists, err = repo.ExistsByEIN(db, *a.EINNumber)
		if err != nil {
			return apperrors.DatabaseError(err)
		}
		if exists {
			fields["einNumber"] = "This EIN is already registered"
		}
	}

	if len(fields) > 0 {
		return apperrors.ConflictFields(fields)
	}
	return nil
}

// newApplicant builds the pending applicant field by field. Only the tax id
// number matching the chosen kind is kept, and licence details are stored
// only for licence holders; everything absent is NULL.
func newApplicant(d *applicationDraft) *models.JobApplicant {
	a := &models.JobApplicant{
		FirstName:   strings.TrimSpace(d.FirstName),
		LastName:    strings.TrimSpace(d.LastName),
		Email:       strings.ToLower(strings.TrimSpace(d.Email)),
		Phone:       optional(d.Phone),
		Address:     optional(d.Address),
		City:        optional(d.City),
		State:       optional(d.State),
		Zip:         optional(d.Zip),
		Age:         d.Age,
		Birthdate:   optionalDate(d.Birthdate),
		Nationality: optional(d.Nationality),
		Days:        canonicalDays(d.Days),
		StartTime:   optional(d.StartTime),
		EndTime:     optional(d.EndTime),
		StartDate:   optionalDate(d.StartDate),
		WorkPeriod:  optional(d.WorkPeriod),
		Smoke:       d.Smoke,
		Transport:   d.Transport,
		Status:      models.ApplicantStatusPending,
	}

	switch kind := models.TaxIDKind(d.SocialSecurity); kind {
	case models.TaxIDSSN:
		a.SocialSecurity = &kind
		a.SocialSecurityNumber = optional(d.SSN)
	case models.TaxIDEIN:
		a.SocialSecurity = &kind
		a.EINNumber = optional(d.EIN)
	}

	if d.hasLicence() {
		a.Licence = true
		a.LicenceNumber = optional(d.LicenceNumber)
		a.LicenceIssuedDate = optionalDate(d.IssuedDate)
		a.LicenceExpireDate = optionalDate(d.ExpireDate)
		a.LicenceIssuedCity = optional(d.LicenceCity)
	}

	if d.WorkPeriodMonths > 0 {
		months := d.WorkPeriodMonths
		a.WorkPeriodMonths = &months
	}
	if d.WorkHours > 0 {
		hours := d.WorkHours
		a.WorkHours = &hours
	}
	return a
}

func canonicalDays(days []string) []string {
	out := make([]string, 0, len(days))
	seen := make(map[string]bool, len(days))
	for _, day := range days {
		if w, ok := models.ParseWeekday(day); ok && !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

func utcNow() time.Time {
	return time.Now().UTC()
}
