package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atlashq/atlas-project-service/entity"
)

type organizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Organization, error) {
	var orgs []entity.Organization
	err := r.db.WithContext(ctx).
		Joins("JOIN organization_users ou ON ou.organization_id = organizations.id").
		Where("ou.user_id = ?", userID).
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepository) FindForUser(ctx context.Context, orgID, userID uuid.UUID) (*entity.Organization, error) {
	var org entity.Organization
	err := r.db.WithContext(ctx).
		Joins("JOIN organization_users ou ON ou.organization_id = organizations.id").
		Where("organizations.id = ? AND ou.user_id = ?", orgID, userID).
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}
