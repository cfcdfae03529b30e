package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/atlashq/atlas-project-service/entity"
)

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) List(ctx context.Context) ([]entity.Preference, error) {
	var prefs []entity.Preference
	err := r.db.WithContext(ctx).Order("key").Find(&prefs).Error
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

// UpsertAll writes all preferences in one statement; existing keys get their
// value overwritten (last write wins).
func (r *preferenceRepository) UpsertAll(ctx context.Context, prefs []entity.Preference) ([]entity.Preference, error) {
	if len(prefs) == 0 {
		return []entity.Preference{}, nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&prefs).Error
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(prefs))
	for _, p := range prefs {
		keys = append(keys, p.Key)
	}
	var saved []entity.Preference
	if err := r.db.WithContext(ctx).Where("key IN ?", keys).Order("key").Find(&saved).Error; err != nil {
		return nil, err
	}
	return saved, nil
}
