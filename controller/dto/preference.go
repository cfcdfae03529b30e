package dto

import "time"

type PreferenceDTO struct {
	Key       string     `json:"key" binding:"required"`
	Value     string     `json:"value"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type PreferenceListDTO struct {
	Preferences []PreferenceDTO `json:"preferences" binding:"required,dive"`
}
