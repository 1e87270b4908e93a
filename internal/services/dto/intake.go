package dto

// ==============================
// 🏊 PUBLIC INTAKE FORMS
// ==============================

type ServiceRequestForm struct {
	Name        string `json:"name" form:"name" validate:"required,min=5,max=50"`
	Email       string `json:"email" form:"email" validate:"required,email,min=5,max=50"`
	Zip         string `json:"zip" form:"zip" validate:"required,max=20"`
	Phone       string `json:"phone" form:"phone" validate:"required,max=50"`
	Service     string `json:"service" form:"service" validate:"required,max=150"`
	Description string `json:"description" form:"description" validate:"required,min=10"`
}

type MessageForm struct {
	Name    string `json:"name" form:"name" validate:"required,max=30"`
	Email   string `json:"email" form:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	Subject string `json:"subject" form:"subject" validate:"required,min=2,max=255"`
	Message string `json:"message" form:"message" validate:"required,min=3,max=1000"`
}
