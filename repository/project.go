package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atlashq/atlas-project-service/entity"
)

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	if project == nil {
		return errors.New("project cannot be nil")
	}
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) ListForOrganization(ctx context.Context, orgID uuid.UUID) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND deleted_at IS NULL", orgID).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) FindForUser(ctx context.Context, orgID, projectID, userID uuid.UUID, includeDeleted bool) (*entity.Project, error) {
	query := r.db.WithContext(ctx).
		Joins("JOIN organizations ON organizations.id = projects.organization_id").
		Joins("JOIN organization_users ou ON ou.organization_id = organizations.id").
		Where("projects.id = ? AND projects.organization_id = ? AND ou.user_id = ?", projectID, orgID, userID)

	if !includeDeleted {
		query = query.Where("projects.deleted_at IS NULL")
	}

	var project entity.Project
	err := query.First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	if project == nil {
		return errors.New("project cannot be nil")
	}
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepository) SoftDelete(ctx context.Context, project *entity.Project) error {
	if project == nil {
		return errors.New("project cannot be nil")
	}
	now := time.Now()
	project.DeletedAt = &now
	return r.db.WithContext(ctx).Model(project).Update("deleted_at", now).Error
}

func (r *projectRepository) HardDelete(ctx context.Context, project *entity.Project) error {
	if project == nil {
		return errors.New("project cannot be nil")
	}
	return r.db.WithContext(ctx).Delete(&entity.Project{}, "id = ?", project.ID).Error
}
