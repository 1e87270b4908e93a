package services

import (
	"errors"
	"strings"

	"poolservice_backend/internal/models"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/internal/validator"
	"poolservice_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ContentServices are the admin CRUD services of clients and site content.
type ContentServices struct {
	Clients          *CrudService[models.Client, dto.ClientRequest]
	ClientCategories *CrudService[models.ClientCategory, dto.ClientCategoryRequest]
	About            *CrudService[models.About, dto.AboutRequest]
	CompanyInfo      *CrudService[models.CompanyInfo, dto.CompanyInfoRequest]
	SocialNetworks   *CrudService[models.SocialNetwork, dto.SocialNetworkRequest]
	Gallery          *CrudService[models.Gallery, dto.GalleryRequest]
	Popups           *CrudService[models.Popup, dto.PopupRequest]
}

func NewContentServices(repos *repositories.ContentRepositories, v *validator.Validator) *ContentServices {
	return &ContentServices{
		Clients: NewCrudService(repos.Clients, v, clientApplier(repos.ClientCategories), CrudOptions{
			Domain:        "client",
			Order:         "name ASC",
			Preload:       []string{"Category"},
			SearchColumns: []string{"name", "email", "city"},
		}),
		ClientCategories: NewCrudService(repos.ClientCategories, v, applyClientCategory, CrudOptions{
			Domain:        "client_category",
			Order:         "name ASC",
			SearchColumns: []string{"name"},
		}),
		About: NewCrudService(repos.About, v, applyAbout, CrudOptions{
			Domain:        "about",
			Order:         "position ASC, created_at ASC",
			SearchColumns: []string{"title"},
		}),
		CompanyInfo: NewCrudService(repos.CompanyInfo, v, applyCompanyInfo, CrudOptions{
			Domain: "company_info",
			Order:  "id ASC",
		}),
		SocialNetworks: NewCrudService(repos.SocialNetworks, v, applySocialNetwork, CrudOptions{
			Domain: "social_network",
			Order:  "position ASC, id ASC",
		}),
		Gallery: NewCrudService(repos.Gallery, v, applyGallery, CrudOptions{
			Domain:        "gallery",
			Order:         "position ASC, created_at DESC",
			SearchColumns: []string{"title"},
		}),
		Popups: NewCrudService(repos.Popups, v, applyPopup, CrudOptions{
			Domain:        "popup",
			SearchColumns: []string{"title"},
		}),
	}
}

func clientApplier(categories *repositories.CrudRepository[models.ClientCategory]) Applier[models.Client, dto.ClientRequest] {
	return func(db *gorm.DB, req *dto.ClientRequest, c *models.Client) error {
		if req.CategoryID != nil {
			if _, err := categories.FindByID(db, *req.CategoryID); err != nil {
				if errors.Is(err, repositories.ErrRecordNotFound) {
					return apperrors.FieldError("category_id", "Unknown category")
				}
				return apperrors.DatabaseError(err)
			}
		}
		c.Name = strings.TrimSpace(req.Name)
		c.Email = optional(strings.ToLower(req.Email))
		c.Phone = optional(req.Phone)
		c.Address = optional(req.Address)
		c.City = optional(req.City)
		c.Zip = optional(req.Zip)
		c.CategoryID = req.CategoryID
		c.Category = nil
		c.Notes = optional(req.Notes)
		return nil
	}
}

func applyClientCategory(_ *gorm.DB, req *dto.ClientCategoryRequest, c *models.ClientCategory) error {
	c.Name = strings.TrimSpace(req.Name)
	return nil
}

func applyAbout(_ *gorm.DB, req *dto.AboutRequest, a *models.About) error {
	a.Title = strings.TrimSpace(req.Title)
	a.Body = req.Body
	a.ImagePath = optional(req.ImagePath)
	a.Position = req.Position
	a.IsPublished = req.IsPublished
	return nil
}

func applyCompanyInfo(_ *gorm.DB, req *dto.CompanyInfoRequest, c *models.CompanyInfo) error {
	c.Name = strings.TrimSpace(req.Name)
	c.Email = optional(strings.ToLower(req.Email))
	c.Phone = optional(req.Phone)
	c.Address = optional(req.Address)
	c.BusinessHours = optional(req.BusinessHours)
	c.Description = optional(req.Description)
	return nil
}

func applySocialNetwork(_ *gorm.DB, req *dto.SocialNetworkRequest, s *models.SocialNetwork) error {
	s.Name = strings.TrimSpace(req.Name)
	s.URL = strings.TrimSpace(req.URL)
	s.Icon = optional(req.Icon)
	s.Position = req.Position
	return nil
}

func applyGallery(_ *gorm.DB, req *dto.GalleryRequest, g *models.Gallery) error {
	g.Title = strings.TrimSpace(req.Title)
	g.Description = optional(req.Description)
	g.ImagePath = strings.TrimSpace(req.ImagePath)
	g.Position = req.Position
	g.IsPublished = req.IsPublished
	return nil
}

func applyPopup(_ *gorm.DB, req *dto.PopupRequest, p *models.Popup) error {
	if req.StartsAt != nil && req.EndsAt != nil && !req.EndsAt.After(*req.StartsAt) {
		return apperrors.FieldError("ends_at", "Must be after starts_at")
	}
	p.Title = strings.TrimSpace(req.Title)
	p.Content = req.Content
	p.ImagePath = optional(req.ImagePath)
	p.Link = optional(req.Link)
	p.IsActive = req.IsActive
	p.StartsAt = req.StartsAt
	p.EndsAt = req.EndsAt
	return nil
}
