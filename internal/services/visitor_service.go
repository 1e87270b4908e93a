package services

import (
	"strings"

	"poolservice_backend/internal/logger"
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/pkg/apperrors"

	"github.com/mssola/user_agent"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Visit is the request metadata recorded for a home-page hit.
type Visit struct {
	IP        string
	Method    string
	URL       string
	Referer   string
	UserAgent string
	Headers   map[string]string
}

type VisitorService struct {
	repo repositories.VisitorRepository
}

func NewVisitorService(repo repositories.VisitorRepository) *VisitorService {
	return &VisitorService{repo: repo}
}

// Track counts one hit for the visit's IP. The increment happens in the
// database, so concurrent hits from one IP are all counted.
func (s *VisitorService) Track(db *gorm.DB, visit Visit) error {
	if strings.TrimSpace(visit.IP) == "" {
		return apperrors.NewBadRequestError("Client IP is unknown")
	}

	visitor := &models.Visitor{
		IP:        visit.IP,
		Method:    visit.Method,
		URL:       truncate(visit.URL, 2048),
		Referer:   optional(truncate(visit.Referer, 2048)),
		UserAgent: optional(visit.UserAgent),
	}
	if len(visit.Headers) > 0 {
		headers := make(datatypes.JSONMap, len(visit.Headers))
		for k, v := range visit.Headers {
			headers[k] = v
		}
		visitor.Headers = headers
	}
	describeAgent(visitor, visit.UserAgent)

	if err := s.repo.Track(db, visitor); err != nil {
		logger.CtxWithError(ctxOf(db), "Failed to track visitor", err, "ip", visit.IP)
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *VisitorService) List(db *gorm.DB, page, pageSize int) (*dto.ListResponse[models.Visitor], error) {
	items, total, err := s.repo.List(db, repositories.ListOptions{
		Page:     page,
		PageSize: pageSize,
		Order:    "last_seen DESC",
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewListResponse(items, total, page, pageSize), nil
}

func (s *VisitorService) Stats(db *gorm.DB) (*repositories.VisitorStats, error) {
	stats, err := s.repo.Stats(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return stats, nil
}

// describeAgent fills the device fields derived from the User-Agent header.
func describeAgent(v *models.Visitor, raw string) {
	if raw == "" {
		return
	}
	ua := user_agent.New(raw)

	device := "desktop"
	switch {
	case ua.Bot():
		device = "bot"
	case ua.Mobile():
		device = "mobile"
	}
	v.Device = &device
	v.IsMobile = ua.Mobile()
	v.IsBot = ua.Bot()

	if platform := ua.OS(); platform != "" {
		v.Platform = &platform
	} else if platform := ua.Platform(); platform != "" {
		v.Platform = &platform
	}
	if name, version := ua.Browser(); name != "" {
		browser := strings.TrimSpace(name + " " + version)
		v.Browser = &browser
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
