package repositories

import (
	"errors"
	"time"

	"poolservice_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrVisitorNotFound = NotFound("visitor")

type VisitorStats struct {
	UniqueVisitors int64 `json:"unique_visitors"`
	TotalRequests  int64 `json:"total_requests"`
	MobileVisitors int64 `json:"mobile_visitors"`
	BotVisitors    int64 `json:"bot_visitors"`
}

type VisitorRepository interface {
	Track(db *gorm.DB, visitor *models.Visitor) error
	FindByIP(db *gorm.DB, ip string) (*models.Visitor, error)
	List(db *gorm.DB, opts ListOptions) ([]models.Visitor, int64, error)
	Stats(db *gorm.DB) (*VisitorStats, error)
}

type visitorRepository struct {
	*CrudRepository[models.Visitor]
}

func NewVisitorRepository() VisitorRepository {
	return &visitorRepository{CrudRepository: NewCrudRepository[models.Visitor](ErrVisitorNotFound)}
}

// Track records one hit in a single INSERT ... ON CONFLICT (ip) DO UPDATE
// statement; the counter is incremented by the database, so concurrent hits
// from the same IP are never lost.
func (r *visitorRepository) Track(db *gorm.DB, visitor *models.Visitor) error {
	now := time.Now().UTC()
	visitor.Request = 1
	visitor.LastSeen = now

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ip"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request":    gorm.Expr("visitors.request + 1"),
			"method":     visitor.Method,
			"url":        visitor.URL,
			"referer":    visitor.Referer,
			"user_agent": visitor.UserAgent,
			"headers":    visitor.Headers,
			"device":     visitor.Device,
			"platform":   visitor.Platform,
			"browser":    visitor.Browser,
			"is_mobile":  visitor.IsMobile,
			"is_bot":     visitor.IsBot,
			"last_seen":  now,
			"updated_at": now,
		}),
	}).Create(visitor).Error
}

func (r *visitorRepository) FindByIP(db *gorm.DB, ip string) (*models.Visitor, error) {
	var visitor models.Visitor
	if err := db.Where("ip = ?", ip).First(&visitor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitorNotFound
		}
		return nil, err
	}
	return &visitor, nil
}

func (r *visitorRepository) Stats(db *gorm.DB) (*VisitorStats, error) {
	var stats VisitorStats
	err := db.Model(&models.Visitor{}).
		Select(`COUNT(*) AS unique_visitors,
			CAST(COALESCE(SUM(request), 0) AS BIGINT) AS total_requests,
			CAST(COALESCE(SUM(CASE WHEN is_mobile THEN 1 ELSE 0 END), 0) AS BIGINT) AS mobile_visitors,
			CAST(COALESCE(SUM(CASE WHEN is_bot THEN 1 ELSE 0 END), 0) AS BIGINT) AS bot_visitors`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
