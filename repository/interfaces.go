package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/atlashq/atlas-project-service/entity"
)

// ErrNotFound is the single miss signal for absent rows and rows the caller
// is not allowed to see. Callers cannot tell the two apart.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	CreateWithOrganization(ctx context.Context, user *entity.User, org *entity.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrganizationRepository interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Organization, error)
	// FindForUser resolves an organization only when the user is a member.
	FindForUser(ctx context.Context, orgID, userID uuid.UUID) (*entity.Organization, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	// ListForOrganization returns active (not soft-deleted) projects.
	ListForOrganization(ctx context.Context, orgID uuid.UUID) ([]entity.Project, error)
	// FindForUser resolves a project only when it belongs to orgID, the user
	// is a member of that organization, and (unless includeDeleted) it is not
	// soft-deleted.
	FindForUser(ctx context.Context, orgID, projectID, userID uuid.UUID, includeDeleted bool) (*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	SoftDelete(ctx context.Context, project *entity.Project) error
	// HardDelete removes the project row; file rows go with it via FK cascade.
	HardDelete(ctx context.Context, project *entity.Project) error
}

type FileRepository interface {
	CreateBatch(ctx context.Context, files []*entity.File) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.File, error)
	FindByIDAndProject(ctx context.Context, fileID, projectID uuid.UUID) (*entity.File, error)
	FindByIDsAndProject(ctx context.Context, fileIDs []uuid.UUID, projectID uuid.UUID) ([]entity.File, error)
	DeleteByIDs(ctx context.Context, fileIDs []uuid.UUID, projectID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.File, error)
	// MarkProcessed stores extracted contents and the processing timestamp in
	// one update; they are never set independently.
	MarkProcessed(ctx context.Context, fileID uuid.UUID, contents string, processedAt time.Time) error
	SaveDetections(ctx context.Context, fileID uuid.UUID, detections datatypes.JSON) error
}

type PreferenceRepository interface {
	List(ctx context.Context) ([]entity.Preference, error)
	UpsertAll(ctx context.Context, prefs []entity.Preference) ([]entity.Preference, error)
}
