package models

// UserModel represents an account holder.
type UserModel struct {
	Base
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name         string         `json:"name"  gorm:"not null"`
	Password     string         `json:"-"     gorm:"not null"` // bcrypt, never exposed
	FeatureFlags map[string]any `json:"feature_flags" gorm:"serializer:json"`
}

func (UserModel) TableName() string { return "users" }
