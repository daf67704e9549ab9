package service

import (
	"context"
	"errors"
	"fmt"
	"pharmacy-store/internal/dto"
	"pharmacy-store/internal/model"
	"pharmacy-store/internal/repository"

	"gorm.io/gorm"
)

type ContactService interface {
	Submit(ctx context.Context, req *dto.ContactRequest) error
	ListMessages(ctx context.Context) ([]*model.ContactMessage, error)
	UpdateMessageStatus(ctx context.Context, messageID uint, status string) error
	TeamMembers(ctx context.Context) ([]*model.TeamMember, error)
}

type contactServiceImpl struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactServiceImpl{
		contactRepo: contactRepo,
	}
}

func (s *contactServiceImpl) Submit(ctx context.Context, req *dto.ContactRequest) error {
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return &ValidationError{Reason: "name, email and message are required"}
	}

	message := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  "new",
	}
	if err := s.contactRepo.Create(ctx, message); err != nil {
		return fmt.Errorf("store contact message: %w", err)
	}

	return nil
}

func (s *contactServiceImpl) ListMessages(ctx context.Context) ([]*model.ContactMessage, error) {
	return s.contactRepo.List(ctx)
}

func (s *contactServiceImpl) UpdateMessageStatus(ctx context.Context, messageID uint, status string) error {
	switch status {
	case "new", "read", "resolved":
	default:
		return &ValidationError{Reason: "unknown message status: " + status}
	}

	if err := s.contactRepo.UpdateStatus(ctx, messageID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ValidationError{Reason: "message not found"}
		}
		return fmt.Errorf("update message status: %w", err)
	}

	return nil
}

func (s *contactServiceImpl) TeamMembers(ctx context.Context) ([]*model.TeamMember, error) {
	return s.contactRepo.ListTeamMembers(ctx)
}
