package entity

import (
	"time"

	"github.com/google/uuid"
)

// Project carries its own nullable DeletedAt marker instead of gorm.DeletedAt:
// visibility is decided by the repository scope (a soft-deleted project must
// still be reachable for hard delete), not by gorm's global soft-delete hooks.
type Project struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string     `json:"name" gorm:"type:varchar(255);not null"`
	Description    string     `json:"description" gorm:"type:text"`
	OrganizationID uuid.UUID  `json:"organization_id" gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time  `json:"created_at" gorm:"not null;autoCreateTime"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Files        []File        `json:"files,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (p *Project) IsDeleted() bool {
	return p.DeletedAt != nil
}
