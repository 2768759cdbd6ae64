package dto

import "time"

type EventRequestDTO struct {
	Name        string    `json:"name" validate:"required,min=1,max=100"`
	Description string    `json:"description"`
	Location    string    `json:"location" validate:"required"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required"`
	Capacity    *int      `json:"capacity" validate:"omitempty,gt=0"`
	Points      int       `json:"points" validate:"required,gt=0"`
}

type EventPatchDTO struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gt=0"`
	Points      *int    `json:"points" validate:"omitempty,gt=0"`
	Published   *bool   `json:"published"`
}

type EventMemberDTO struct {
	ID     int    `json:"id"`
	Utorid string `json:"utorid"`
	Name   string `json:"name"`
}

type EventResponseDTO struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Location      string           `json:"location"`
	StartTime     time.Time        `json:"startTime"`
	EndTime       time.Time        `json:"endTime"`
	Capacity      *int             `json:"capacity,omitempty"`
	PointsRemain  *int             `json:"pointsRemain,omitempty"`
	PointsAwarded *int             `json:"pointsAwarded,omitempty"`
	Published     *bool            `json:"published,omitempty"`
	Organizers    []EventMemberDTO `json:"organizers"`
	Guests        []EventMemberDTO `json:"guests,omitempty"`
	NumGuests     *int             `json:"numGuests,omitempty"`
}

type AddMemberRequestDTO struct {
	Utorid string `json:"utorid" validate:"required,alphanum,min=7,max=8"`
}

type RewardRequestDTO struct {
	Type   string  `json:"type" validate:"required,oneof=event"`
	Utorid *string `json:"utorid" validate:"omitempty,alphanum,min=7,max=8"`
	Amount int     `json:"amount" validate:"required,gt=0"`
	Remark string  `json:"remark"`
}

type ListEventsResponseDTO struct {
	Count   int                `json:"count"`
	Results []EventResponseDTO `json:"results"`
}
