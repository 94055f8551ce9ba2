package auth

import (
	"errors"
	"time"
)

type RegisterDTO struct {
	Email                string `json:"email" binding:"required,email"`
	Name                 string `json:"name" binding:"required"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required"`
	RememberMe           bool   `json:"remember_me"`
}

type LoginDTO struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

type RevokeSessionDTO struct {
	ID string `json:"id" binding:"required"`
}

type userResponse struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

type sessionResponse struct {
	ID        string    `json:"id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	Location  *string   `json:"location"`
	Device    *string   `json:"device"`
	IsCurrent bool      `json:"is_current"`
	Created   time.Time `json:"created"`
	Modified  time.Time `json:"modified"`
}

var (
	errEmailTaken         = errors.New("email already registered")
	errInvalidCredentials = errors.New("invalid credentials")
)
