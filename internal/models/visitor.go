package models

import (
	"time"

	"gorm.io/datatypes"
)

// Visitor aggregates home-page hits per client IP.
type Visitor struct {
	BaseModel
	IP        string            `gorm:"size:64;not null;uniqueIndex" json:"ip"`
	Request   int64             `gorm:"not null" json:"request"`
	Method    string            `gorm:"size:10" json:"method"`
	URL       string            `gorm:"size:2048" json:"url"`
	Referer   *string           `gorm:"size:2048" json:"referer"`
	UserAgent *string           `gorm:"type:text" json:"user_agent"`
	Headers   datatypes.JSONMap `json:"headers"`
	Device    *string           `gorm:"size:50" json:"device"`
	Platform  *string           `gorm:"size:100" json:"platform"`
	Browser   *string           `gorm:"size:100" json:"browser"`
	IsMobile  bool              `gorm:"not null" json:"is_mobile"`
	IsBot     bool              `gorm:"not null" json:"is_bot"`
	LastSeen  time.Time         `json:"last_seen"`
}
