package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type File struct {
	ID               uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectID        uuid.UUID      `json:"project_id" gorm:"type:uuid;not null;index"`
	Path             string         `json:"path" gorm:"type:varchar(1024);not null"`
	Size             int64          `json:"size" gorm:"not null"`
	MimeType         string         `json:"mime_type" gorm:"type:varchar(255);not null"`
	OriginalFilename string         `json:"original_filename" gorm:"type:varchar(512);not null"`
	Contents         *string        `json:"contents,omitempty" gorm:"type:text"`
	ProcessedAt      *time.Time     `json:"processed_at,omitempty"`
	Detections       datatypes.JSON `json:"detections,omitempty"`
	CreatedAt        time.Time      `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt        time.Time      `json:"updated_at" gorm:"autoUpdateTime"`

	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
