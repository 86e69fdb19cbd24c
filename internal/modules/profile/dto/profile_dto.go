package dto

type UpdateAccountInput struct {
	FullName    *string `json:"full_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Location    *string `json:"location" binding:"omitempty,max=100"`
	LinkedinURL *string `json:"linkedin_url"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}
