package user

import (
	"errors"
	"time"
)

type UpdateDTO struct {
	CurrentPassword         string `json:"current_password" binding:"required"`
	Email                   string `json:"email" binding:"omitempty,email"`
	Name                    string `json:"name"`
	NewPassword             string `json:"new_password" binding:"omitempty,min=8"`
	NewPasswordConfirmation string `json:"new_password_confirmation"`
}

type userResponse struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Name         string         `json:"name"`
	FeatureFlags map[string]any `json:"feature_flags"`
	Created      time.Time      `json:"created"`
	Modified     time.Time      `json:"modified"`
}

var (
	errUserNotFound  = errors.New("user not found")
	errWrongPassword = errors.New("wrong password")
	errEmailTaken    = errors.New("email already registered")
)
