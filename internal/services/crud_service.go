package services

import (
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/internal/validator"
	"poolservice_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CrudOptions describes one admin-managed resource.
type CrudOptions struct {
	Domain        string
	Order         string
	Preload       []string
	SearchColumns []string
}

// Applier copies a validated request onto the entity, field by field.
type Applier[T any, R any] func(db *gorm.DB, req *R, entity *T) error

// CrudService is the admin CRUD of a resource that has no workflow of its
// own. R is the request DTO used for both create and update.
type CrudService[T any, R any] struct {
	repo      *repositories.CrudRepository[T]
	validator *validator.Validator
	apply     Applier[T, R]
	opts      CrudOptions
}

func NewCrudService[T any, R any](repo *repositories.CrudRepository[T], v *validator.Validator, apply Applier[T, R], opts CrudOptions) *CrudService[T, R] {
	return &CrudService[T, R]{repo: repo, validator: v, apply: apply, opts: opts}
}

func (s *CrudService[T, R]) List(db *gorm.DB, search string, page, pageSize int) (*dto.ListResponse[T], error) {
	var scopes []func(*gorm.DB) *gorm.DB
	if len(s.opts.SearchColumns) > 0 {
		scopes = append(scopes, repositories.Search(search, s.opts.SearchColumns...))
	}
	items, total, err := s.repo.List(db, repositories.ListOptions{
		Page:     page,
		PageSize: pageSize,
		Order:    s.opts.Order,
		Preload:  s.opts.Preload,
		Scopes:   scopes,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewListResponse(items, total, page, pageSize), nil
}

func (s *CrudService[T, R]) Get(db *gorm.DB, id interface{}) (*T, error) {
	entity, err := s.repo.FindByID(db, id, s.opts.Preload...)
	if err != nil {
		return nil, translateError(err, s.opts.Domain)
	}
	return entity, nil
}

func (s *CrudService[T, R]) Create(db *gorm.DB, req *R) (*T, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	entity := new(T)
	if err := s.apply(db, req, entity); err != nil {
		return nil, err
	}
	if err := s.repo.Create(db, entity); err != nil {
		return nil, translateError(err, s.opts.Domain)
	}
	return entity, nil
}

func (s *CrudService[T, R]) Update(db *gorm.DB, id interface{}, req *R) (*T, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	entity, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, translateError(err, s.opts.Domain)
	}
	if err := s.apply(db, req, entity); err != nil {
		return nil, err
	}
	if err := s.repo.Update(db, entity); err != nil {
		return nil, translateError(err, s.opts.Domain)
	}
	return entity, nil
}

func (s *CrudService[T, R]) Delete(db *gorm.DB, id interface{}) error {
	return translateError(s.repo.Delete(db, id), s.opts.Domain)
}
