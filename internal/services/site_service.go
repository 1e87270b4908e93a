package services

import (
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// HomePage is the public home page payload.
type HomePage struct {
	Company *models.CompanyInfo    `json:"company"`
	About   []models.About         `json:"about"`
	Social  []models.SocialNetwork `json:"social"`
	Gallery []models.Gallery       `json:"gallery"`
	Popup   *models.Popup          `json:"popup"`
}

// SiteService serves the published content of the public site.
type SiteService struct {
	content *repositories.ContentRepositories
}

func NewSiteService(content *repositories.ContentRepositories) *SiteService {
	return &SiteService{content: content}
}

func published(db *gorm.DB) *gorm.DB {
	return db.Where("is_published = ?", true)
}

func (s *SiteService) Home(db *gorm.DB) (*HomePage, error) {
	company, err := s.Company(db)
	if err != nil {
		return nil, err
	}
	about, err := s.About(db)
	if err != nil {
		return nil, err
	}
	social, err := s.Social(db)
	if err != nil {
		return nil, err
	}
	gallery, err := s.Gallery(db)
	if err != nil {
		return nil, err
	}
	popup, err := s.Popup(db)
	if err != nil {
		return nil, err
	}
	return &HomePage{Company: company, About: about, Social: social, Gallery: gallery, Popup: popup}, nil
}

// Company returns the company info row, or nil when none was entered yet.
func (s *SiteService) Company(db *gorm.DB) (*models.CompanyInfo, error) {
	items, err := s.content.CompanyInfo.All(db, "id ASC")
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func (s *SiteService) About(db *gorm.DB) ([]models.About, error) {
	items, err := s.content.About.All(db, "position ASC, created_at ASC", published)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return items, nil
}

func (s *SiteService) Social(db *gorm.DB) ([]models.SocialNetwork, error) {
	items, err := s.content.SocialNetworks.All(db, "position ASC, id ASC")
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return items, nil
}

func (s *SiteService) Gallery(db *gorm.DB) ([]models.Gallery, error) {
	items, err := s.content.Gallery.All(db, "position ASC, created_at DESC", published)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return items, nil
}

// Popup returns the newest popup visible now, or nil.
func (s *SiteService) Popup(db *gorm.DB) (*models.Popup, error) {
	items, err := s.content.Popups.All(db, "created_at DESC", func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	t := utcNow()
	for i := range items {
		if items[i].Visible(t) {
			return &items[i], nil
		}
	}
	return nil, nil
}
