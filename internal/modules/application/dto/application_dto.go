package dto

import "github.com/google/uuid"

type ApplyInput struct {
	RoleID      uuid.UUID `json:"role_id" binding:"required"`
	CoverLetter *string   `json:"cover_letter"`
}

type AdvanceStatusInput struct {
	Status string  `json:"status" binding:"required,oneof=viewed interview offer accepted rejected"`
	Notes  *string `json:"notes"`
}
