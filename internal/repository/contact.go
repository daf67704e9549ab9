package repository

import (
	"context"
	"pharmacy-store/internal/model"
	"time"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(ctx context.Context, message *model.ContactMessage) error
	List(ctx context.Context) ([]*model.ContactMessage, error)
	UpdateStatus(ctx context.Context, messageID uint, status string) error
	ListTeamMembers(ctx context.Context) ([]*model.TeamMember, error)
}

type contactRepoImpl struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepoImpl{db: db}
}

func (r *contactRepoImpl) Create(ctx context.Context, message *model.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *contactRepoImpl) List(ctx context.Context) ([]*model.ContactMessage, error) {
	var messages []*model.ContactMessage
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&messages).Error

	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *contactRepoImpl) UpdateStatus(ctx context.Context, messageID uint, status string) error {
	result := r.db.WithContext(ctx).Model(&model.ContactMessage{}).
		Where("id = ?", messageID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *contactRepoImpl) ListTeamMembers(ctx context.Context) ([]*model.TeamMember, error) {
	var members []*model.TeamMember
	err := r.db.WithContext(ctx).
		Order("display_order").
		Find(&members).Error

	if err != nil {
		return nil, err
	}

	return members, nil
}
