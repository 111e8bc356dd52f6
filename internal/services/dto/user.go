package dto

import "time"

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Coins     int       `json:"coins"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserProfileResponse struct {
	UserResponse
	Rating       float64          `json:"rating"`
	ReviewCount  int64            `json:"reviewCount"`
	Endorsements map[string]int64 `json:"endorsements"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"required,oneof=active suspended banned"`
}

type EndorseSkillRequest struct {
	Skill string `json:"skill" binding:"required" validate:"required,min=2,max=100"`
}

type EndorsementResponse struct {
	ID         string    `json:"id"`
	EndorserID string    `json:"endorserId"`
	UserID     string    `json:"userId"`
	Skill      string    `json:"skill"`
	CreatedAt  time.Time `json:"createdAt"`
}
