package dto

type ProjectRequestDTO struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description"`
}
