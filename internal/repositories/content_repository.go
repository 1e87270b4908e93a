package repositories

import (
	"poolservice_backend/internal/models"
)

var (
	ErrClientNotFound         = NotFound("client")
	ErrClientCategoryNotFound = NotFound("client category")
	ErrAboutNotFound          = NotFound("about section")
	ErrCompanyInfoNotFound    = NotFound("company info")
	ErrSocialNetworkNotFound  = NotFound("social network")
	ErrGalleryNotFound        = NotFound("gallery image")
	ErrPopupNotFound          = NotFound("popup")
)

// ContentRepositories groups the repositories of the CMS-style entities,
// which need nothing beyond CrudRepository.
type ContentRepositories struct {
	Clients          *CrudRepository[models.Client]
	ClientCategories *CrudRepository[models.ClientCategory]
	About            *CrudRepository[models.About]
	CompanyInfo      *CrudRepository[models.CompanyInfo]
	SocialNetworks   *CrudRepository[models.SocialNetwork]
	Gallery          *CrudRepository[models.Gallery]
	Popups           *CrudRepository[models.Popup]
}

func NewContentRepositories() *ContentRepositories {
	return &ContentRepositories{
		Clients:          NewCrudRepository[models.Client](ErrClientNotFound),
		ClientCategories: NewCrudRepository[models.ClientCategory](ErrClientCategoryNotFound),
		About:            NewCrudRepository[models.About](ErrAboutNotFound),
		CompanyInfo:      NewCrudRepository[models.CompanyInfo](ErrCompanyInfoNotFound),
		SocialNetworks:   NewCrudRepository[models.SocialNetwork](ErrSocialNetworkNotFound),
		Gallery:          NewCrudRepository[models.Gallery](ErrGalleryNotFound),
		Popups:           NewCrudRepository[models.Popup](ErrPopupNotFound),
	}
}
