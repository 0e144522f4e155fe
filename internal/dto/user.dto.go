package dto

import (
	"time"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

type UserSummaryDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type ProfileDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Warnings  int       `json:"warnings"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

func phoneOf(u *models.User) string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}

func UserSummary(u *models.User) *UserSummaryDTO {
	if u == nil {
		return nil
	}
	return &UserSummaryDTO{ID: u.ID, Name: u.Name, Email: u.Email, Phone: phoneOf(u)}
}

func Profile(u *models.User) ProfileDTO {
	return ProfileDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     phoneOf(u),
		Role:      u.Role,
		Status:    u.Status,
		Warnings:  u.Warnings,
		IsDeleted: u.IsDeleted,
		CreatedAt: u.CreatedAt,
	}
}

func Profiles(users []models.User) []ProfileDTO {
	out := make([]ProfileDTO, 0, len(users))
	for i := range users {
		out = append(out, Profile(&users[i]))
	}
	return out
}
