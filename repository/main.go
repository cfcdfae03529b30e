package repository

import (
	"gorm.io/gorm"

	"github.com/atlashq/atlas-project-service/infra"
)

type Repository struct {
	Db *gorm.DB

	Users         UserRepository
	Organizations OrganizationRepository
	Projects      ProjectRepository
	Files         FileRepository
	Preferences   PreferenceRepository
}

func InitRepository(infra *infra.Infra) *Repository {
	db := infra.Postgres.DB
	if db == nil {
		panic("database connection is nil")
	}

	return &Repository{
		Db:            db,
		Users:         NewUserRepository(db),
		Organizations: NewOrganizationRepository(db),
		Projects:      NewProjectRepository(db),
		Files:         NewFileRepository(db),
		Preferences:   NewPreferenceRepository(db),
	}
}
