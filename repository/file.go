package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/atlashq/atlas-project-service/entity"
)

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) CreateBatch(ctx context.Context, files []*entity.File) error {
	if len(files) == 0 {
		return errors.New("no files to create")
	}
	return r.db.WithContext(ctx).Create(files).Error
}

func (r *fileRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.File, error) {
	var files []entity.File
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepository) FindByIDAndProject(ctx context.Context, fileID, projectID uuid.UUID) (*entity.File, error) {
	var file entity.File
	err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", fileID, projectID).
		First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) FindByIDsAndProject(ctx context.Context, fileIDs []uuid.UUID, projectID uuid.UUID) ([]entity.File, error) {
	var files []entity.File
	err := r.db.WithContext(ctx).
		Where("id IN ? AND project_id = ?", fileIDs, projectID).
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepository) DeleteByIDs(ctx context.Context, fileIDs []uuid.UUID, projectID uuid.UUID) error {
	if len(fileIDs) == 0 {
		return errors.New("no file ids to delete")
	}
	return r.db.WithContext(ctx).
		Where("id IN ? AND project_id = ?", fileIDs, projectID).
		Delete(&entity.File{}).Error
}

func (r *fileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.File, error) {
	var file entity.File
	err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) MarkProcessed(ctx context.Context, fileID uuid.UUID, contents string, processedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entity.File{}).
		Where("id = ?", fileID).
		Updates(map[string]interface{}{
			"contents":     contents,
			"processed_at": processedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *fileRepository) SaveDetections(ctx context.Context, fileID uuid.UUID, detections datatypes.JSON) error {
	result := r.db.WithContext(ctx).
		Model(&entity.File{}).
		Where("id = ?", fileID).
		Update("detections", detections)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
