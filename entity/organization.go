package entity

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`

	Users    []User    `json:"users,omitempty" gorm:"many2many:organization_users;"`
	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}
