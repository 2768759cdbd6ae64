package dto

import "time"

type RegisterRequestDTO struct {
	Utorid string `json:"utorid" validate:"required,alphanum,min=7,max=8"`
	Name   string `json:"name" validate:"required,min=1,max=50"`
	Email  string `json:"email" validate:"required,email"`
}

type RegisterResponseDTO struct {
	ID          int       `json:"id"`
	Utorid      string    `json:"utorid"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Verified    bool      `json:"verified"`
	ExpiresAt   time.Time `json:"expiresAt"`
	ResetToken  string    `json:"resetToken"`
}

type UserResponseDTO struct {
	ID         int        `json:"id"`
	Utorid     string     `json:"utorid"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Points     int        `json:"points"`
	Verified   bool       `json:"verified"`
	Suspicious *bool      `json:"suspicious,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
}

type UpdateUserRequestDTO struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	Verified   *bool   `json:"verified"`
	Suspicious *bool   `json:"suspicious"`
	Role       *string `json:"role" validate:"omitempty,oneof=regular cashier manager superuser"`
}

type UpdateSelfRequestDTO struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type ChangePasswordRequestDTO struct {
	Old string `json:"old" validate:"required"`
	New string `json:"new" validate:"required"`
}

type ListUsersResponseDTO struct {
	Count   int               `json:"count"`
	Results []UserResponseDTO `json:"results"`
}
