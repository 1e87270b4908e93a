package services

import (
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MessageService struct {
	repo repositories.MessageRepository
}

func NewMessageService(repo repositories.MessageRepository) *MessageService {
	return &MessageService{repo: repo}
}

func (s *MessageService) List(db *gorm.DB, read *bool, search string, page, pageSize int) (*dto.ListResponse[models.Message], error) {
	items, total, err := s.repo.FindWithFilter(db, repositories.MessageFilter{
		Read:     read,
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewListResponse(items, total, page, pageSize), nil
}

func (s *MessageService) Get(db *gorm.DB, id string) (*models.Message, error) {
	msg, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, translateError(err, "message")
	}
	return msg, nil
}

func (s *MessageService) MarkRead(db *gorm.DB, id string) (*models.Message, error) {
	if err := s.repo.MarkRead(db, id); err != nil {
		return nil, translateError(err, "message")
	}
	return s.Get(db, id)
}

func (s *MessageService) MarkReplied(db *gorm.DB, id string) (*models.Message, error) {
	if err := s.repo.MarkReplied(db, id); err != nil {
		return nil, translateError(err, "message")
	}
	return s.Get(db, id)
}

func (s *MessageService) CountUnread(db *gorm.DB) (int64, error) {
	n, err := s.repo.CountUnread(db)
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	return n, nil
}

func (s *MessageService) Delete(db *gorm.DB, id string) error {
	return translateError(s.repo.Delete(db, id), "message")
}
