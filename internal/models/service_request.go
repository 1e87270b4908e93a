package models

import "time"

type ServiceRequest struct {
	BaseModel
	SoftDelete
	Name        string  `gorm:"size:50;not null" json:"name"`
	Email       string  `gorm:"size:50;not null;index" json:"email"`
	Zip         string  `gorm:"size:20;not null" json:"zip"`
	Phone       string  `gorm:"size:50;not null" json:"phone"`
	Service     string  `gorm:"size:150;not null" json:"service"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Assigned    bool    `gorm:"not null;default:false" json:"assigned"`
	ClientID    *string `gorm:"type:uuid;index" json:"client_id"`
	Client      *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	// UserID is the technician the request was assigned to.
	UserID *string `gorm:"type:uuid;index" json:"user_id"`
	Tasks  []Task  `gorm:"foreignKey:ServiceRequestID" json:"tasks,omitempty"`
}

type Task struct {
	BaseModel
	SoftDelete
	ServiceRequestID string          `gorm:"type:uuid;not null;index" json:"service_request_id"`
	ServiceRequest   *ServiceRequest `gorm:"foreignKey:ServiceRequestID" json:"service_request,omitempty"`
	UserID           string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Technician       *User           `gorm:"foreignKey:UserID" json:"technician,omitempty"`
	Status           string          `gorm:"size:50;not null;default:'pending'" json:"status"`
	ScheduledDate    *time.Time      `json:"scheduled_date"`
	Comments         *string         `gorm:"type:text" json:"comments"`
	AssignedTasks    []AssignedTask  `gorm:"foreignKey:TaskID" json:"assigned_tasks,omitempty"`
}

type AssignedTask struct {
	BaseModel
	SoftDelete
	TaskID      string             `gorm:"type:uuid;not null;index" json:"task_id"`
	Task        *Task              `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	UserID      string             `gorm:"type:uuid;not null;index" json:"user_id"`
	Status      AssignedTaskStatus `gorm:"type:varchar(20);not null;default:'assigned'" json:"status"`
	StartedAt   *time.Time         `json:"started_at"`
	CompletedAt *time.Time         `json:"completed_at"`
	Feedback    *string            `gorm:"type:text" json:"feedback"`
	// Image paths come from the external upload store.
	BeforeImage *string `gorm:"size:500" json:"before_image"`
	AfterImage  *string `gorm:"size:500" json:"after_image"`
}
