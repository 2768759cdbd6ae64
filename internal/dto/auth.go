package dto

import "time"

type AuthTokenRequestDTO struct {
	Utorid   string `json:"utorid" validate:"required,alphanum,min=7,max=8"`
	Password string `json:"password" validate:"required"`
}

type AuthTokenResponseDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ResetRequestDTO struct {
	Utorid string `json:"utorid" validate:"required,alphanum,min=7,max=8"`
}

type ResetRequestResponseDTO struct {
	ExpiresAt  time.Time `json:"expiresAt"`
	ResetToken string    `json:"resetToken"`
}

type ResetCompleteRequestDTO struct {
	Utorid   string `json:"utorid" validate:"required,alphanum,min=7,max=8"`
	Password string `json:"password" validate:"required"`
}
