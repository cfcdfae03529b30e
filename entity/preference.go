package entity

import "time"

type Preference struct {
	Key       string    `json:"key" gorm:"type:varchar(255);primaryKey"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
