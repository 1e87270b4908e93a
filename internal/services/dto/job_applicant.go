package dto

// ==============================
// 👷 JOB APPLICATIONS
// ==============================

// PublicApplicationForm is the unauthenticated job application.
type PublicApplicationForm struct {
	FirstName   string `json:"firstname" form:"firstname" validate:"required,max=100"`
	LastName    string `json:"lastname" form:"lastname" validate:"required,max=100"`
	Email       string `json:"email" form:"email" validate:"required,email,max=255"`
	Phone       string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	Address     string `json:"address" form:"address" validate:"omitempty,max=255"`
	City        string `json:"city" form:"city" validate:"omitempty,max=100"`
	State       string `json:"state" form:"state" validate:"omitempty,max=100"`
	Zip         string `json:"zip" form:"zip" validate:"omitempty,max=20"`
	Age         int    `json:"age" form:"age" validate:"required,gte=18,lte=100"`
	Birthdate   string `json:"birthdate" form:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Nationality string `json:"nationality" form:"nationality" validate:"omitempty,max=100"`

	SocialSecurity       string `json:"socialsecurity" form:"socialsecurity" validate:"required,oneof=SSN EIN"`
	SocialSecurityNumber string `json:"socialsecurityNumber" form:"socialsecurityNumber" validate:"omitempty,max=11"`
	EINNumber            string `json:"einNumber" form:"einNumber" validate:"omitempty,max=10"`

	Licence           string `json:"licence" form:"licence" validate:"omitempty,yesno"`
	LicenceNumber     string `json:"licenceNumber" form:"licenceNumber"`
	LicenceIssuedDate string `json:"issueddate" form:"issueddate"`
	LicenceExpireDate string `json:"expiredate" form:"expiredate"`
	LicenceIssuedCity string `json:"issuedcity" form:"issuedcity"`

	Days       []string `json:"days" form:"days" validate:"required,min=1,dive,weekday"`
	StartTime  string   `json:"starttime" form:"starttime" validate:"omitempty,datetime=15:04"`
	EndTime    string   `json:"endtime" form:"endtime" validate:"omitempty,datetime=15:04"`
	StartDate  string   `json:"startdate" form:"startdate" validate:"omitempty,datetime=2006-01-02"`
	WorkPeriod string   `json:"workperiod" form:"workperiod" validate:"omitempty,workperiod"`
	Smoke      bool     `json:"smoke" form:"smoke"`
	Transport  bool     `json:"transport" form:"transport"`
}

// PortalApplicationForm is the job application of a signed-in user.
type PortalApplicationForm struct {
	FirstName   string `json:"firstname" form:"firstname" validate:"required,max=100"`
	LastName    string `json:"lastname" form:"lastname" validate:"required,max=100"`
	Email       string `json:"email" form:"email" validate:"required,email,max=255"`
	Phone       string `json:"phone" form:"phone" validate:"required,max=50"`
	Address     string `json:"address" form:"address" validate:"required,max=255"`
	City        string `json:"city" form:"city" validate:"required,max=100"`
	State       string `json:"state" form:"state" validate:"required,max=100"`
	Zip         string `json:"zip" form:"zip" validate:"required,digits,min=3,max=6"`
	Age         int    `json:"age" form:"age" validate:"required,gte=18,lte=45"`
	Birthdate   string `json:"birthdate" form:"birthdate" validate:"required,datetime=2006-01-02"`
	Nationality string `json:"nationality" form:"nationality" validate:"required,max=100"`

	SocialSecurity       string `json:"socialsecurity" form:"socialsecurity" validate:"required,oneof=SSN EIN"`
	SocialSecurityNumber string `json:"socialsecurityNumber" form:"socialsecurityNumber" validate:"omitempty,len=11"`
	EINNumber            string `json:"einNumber" form:"einNumber" validate:"omitempty,len=10"`

	Licence           string `json:"licence" form:"licence" validate:"omitempty,yesno"`
	LicenceNumber     string `json:"licenceNumber" form:"licenceNumber"`
	LicenceIssuedDate string `json:"issueddate" form:"issueddate"`
	LicenceExpireDate string `json:"expiredate" form:"expiredate"`
	LicenceIssuedCity string `json:"issuedcity" form:"issuedcity"`

	Days       []string `json:"days" form:"days" validate:"required,min=2,max=6,dive,weekday"`
	StartTime  string   `json:"starttime" form:"starttime" validate:"omitempty,datetime=15:04"`
	EndTime    string   `json:"endtime" form:"endtime" validate:"omitempty,datetime=15:04"`
	StartDate  string   `json:"startdate" form:"startdate" validate:"omitempty,datetime=2006-01-02"`
	WorkPeriod int      `json:"workperiod" form:"workperiod" validate:"required,gte=3,lte=12"`
	WorkHours  int      `json:"workHours" form:"workHours" validate:"required,gte=30,lte=170"`
	Smoke      bool     `json:"smoke" form:"smoke"`
	Transport  bool     `json:"transport" form:"transport"`
}

// LicenceDetails is the second validation pass, run only when the
// applicant answered "yes" to holding a licence.
type LicenceDetails struct {
	LicenceNumber string `json:"licenceNumber" validate:"required,min=6,max=50"`
	IssuedDate    string `json:"issueddate" validate:"required,datetime=2006-01-02"`
	ExpireDate    string `json:"expiredate" validate:"required,datetime=2006-01-02"`
	IssuedCity    string `json:"issuedcity" validate:"required,max=100"`
}

type RejectApplicantRequest struct {
	Reason string `json:"reason" form:"reason" validate:"omitempty,max=2000"`
}

type ApplicantListQuery struct {
	Status string `form:"status" validate:"omitempty,oneof=pending accepted rejected hired"`
	Search string `form:"search" validate:"omitempty,max=100"`
}
