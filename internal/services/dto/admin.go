package dto

import "time"

// ==============================
// 📋 SERVICE REQUESTS & TASKS
// ==============================

type ServiceRequestRequest struct {
	Name        string `json:"name" form:"name" validate:"required,min=5,max=50"`
	Email       string `json:"email" form:"email" validate:"required,email,min=5,max=50"`
	Zip         string `json:"zip" form:"zip" validate:"required,max=20"`
	Phone       string `json:"phone" form:"phone" validate:"required,max=50"`
	Service     string `json:"service" form:"service" validate:"required,max=150"`
	Description string `json:"description" form:"description" validate:"required,min=10"`
	ClientID    string `json:"client_id" form:"client_id" validate:"omitempty,uuid"`
}

type CreateTaskRequest struct {
	TechnicianID  string `json:"user_id" form:"user_id" validate:"required,uuid"`
	ScheduledDate string `json:"scheduled_date" form:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	Comments      string `json:"comments" form:"comments" validate:"omitempty,max=2000"`
}

type UpdateTaskRequest struct {
	Status        string `json:"status" form:"status" validate:"required,max=50"`
	ScheduledDate string `json:"scheduled_date" form:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	Comments      string `json:"comments" form:"comments" validate:"omitempty,max=2000"`
}

// AssignTaskRequest hands a task to a technician; the task's own
// technician is used when TechnicianID is empty.
type AssignTaskRequest struct {
	TechnicianID string `json:"user_id" form:"user_id" validate:"omitempty,uuid"`
}

type CompleteTaskRequest struct {
	Feedback    string `json:"feedback" form:"feedback" validate:"omitempty,max=5000"`
	BeforeImage string `json:"before_image" form:"before_image" validate:"omitempty,max=500"`
	AfterImage  string `json:"after_image" form:"after_image" validate:"omitempty,max=500"`
}

// ==============================
// 👤 USERS
// ==============================

type CreateUserRequest struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,max=100"`
	Email     string `json:"email" form:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	Address   string `json:"address" form:"address" validate:"omitempty,max=255"`
	City      string `json:"city" form:"city" validate:"omitempty,max=100"`
	State     string `json:"state" form:"state" validate:"omitempty,max=100"`
	Zip       string `json:"zip" form:"zip" validate:"omitempty,max=20"`
	Role      string `json:"role" form:"role" validate:"required,is-user-role"`
	Password  string `json:"password" form:"password" validate:"required,min=8,max=72"`
}

type UpdateUserRequest struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,max=100"`
	Email     string `json:"email" form:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	Address   string `json:"address" form:"address" validate:"omitempty,max=255"`
	City      string `json:"city" form:"city" validate:"omitempty,max=100"`
	State     string `json:"state" form:"state" validate:"omitempty,max=100"`
	Zip       string `json:"zip" form:"zip" validate:"omitempty,max=20"`
	Role      string `json:"role" form:"role" validate:"required,is-user-role"`
	Password  string `json:"password" form:"password" validate:"omitempty,min=8,max=72"`
}

// ==============================
// 🧾 CLIENTS
// ==============================

type ClientRequest struct {
	Name       string `json:"name" form:"name" validate:"required,max=150"`
	Email      string `json:"email" form:"email" validate:"omitempty,email,max=255"`
	Phone      string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	Address    string `json:"address" form:"address" validate:"omitempty,max=255"`
	City       string `json:"city" form:"city" validate:"omitempty,max=100"`
	Zip        string `json:"zip" form:"zip" validate:"omitempty,max=20"`
	CategoryID *uint  `json:"category_id" form:"category_id"`
	Notes      string `json:"notes" form:"notes" validate:"omitempty,max=5000"`
}

type ClientCategoryRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=100"`
}

// ==============================
// 🖼 SITE CONTENT
// ==============================

type AboutRequest struct {
	Title       string `json:"title" form:"title" validate:"required,max=255"`
	Body        string `json:"body" form:"body" validate:"required"`
	ImagePath   string `json:"image_path" form:"image_path" validate:"omitempty,max=500"`
	Position    int    `json:"position" form:"position" validate:"gte=0"`
	IsPublished bool   `json:"is_published" form:"is_published"`
}

type CompanyInfoRequest struct {
	Name          string `json:"name" form:"name" validate:"required,max=150"`
	Email         string `json:"email" form:"email" validate:"omitempty,email,max=255"`
	Phone         string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	Address       string `json:"address" form:"address" validate:"omitempty,max=255"`
	BusinessHours string `json:"business_hours" form:"business_hours" validate:"omitempty,max=255"`
	Description   string `json:"description" form:"description"`
}

type SocialNetworkRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=50"`
	URL      string `json:"url" form:"url" validate:"required,url,max=500"`
	Icon     string `json:"icon" form:"icon" validate:"omitempty,max=100"`
	Position int    `json:"position" form:"position" validate:"gte=0"`
}

type GalleryRequest struct {
	Title       string `json:"title" form:"title" validate:"required,max=255"`
	Description string `json:"description" form:"description"`
	ImagePath   string `json:"image_path" form:"image_path" validate:"required,max=500"`
	Position    int    `json:"position" form:"position" validate:"gte=0"`
	IsPublished bool   `json:"is_published" form:"is_published"`
}

type PopupRequest struct {
	Title     string     `json:"title" form:"title" validate:"required,max=255"`
	Content   string     `json:"content" form:"content" validate:"required"`
	ImagePath string     `json:"image_path" form:"image_path" validate:"omitempty,max=500"`
	Link      string     `json:"link" form:"link" validate:"omitempty,url,max=500"`
	IsActive  bool       `json:"is_active" form:"is_active"`
	StartsAt  *time.Time `json:"starts_at" form:"starts_at" time_format:"2006-01-02T15:04:05Z07:00"`
	EndsAt    *time.Time `json:"ends_at" form:"ends_at" time_format:"2006-01-02T15:04:05Z07:00"`
}

// ==============================
// ✉️ EMAIL BLASTS
// ==============================

type EmailBlastRequest struct {
	Subject    string `json:"subject" form:"subject" validate:"required,max=255"`
	Recipients string `json:"recipients" form:"recipients" validate:"required,max=50000"`
	Message    string `json:"message" form:"message" validate:"required"`
}
