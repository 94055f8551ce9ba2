// Package session persists authenticated login instances. Ownership is
// always part of the query predicate itself, never a separate lookup, so a
// caller can only ever touch their own rows.
package session

import (
	"time"

	"github.com/notevault/core/internal/models"
	"github.com/notevault/core/internal/pkg/requestinfo"
	"gorm.io/gorm"
)

// Create inserts a session for userID, snapshotting the request origin.
// A userID that references no user surfaces as the store's foreign-key error.
func Create(db *gorm.DB, userID string, info requestinfo.Info) (*models.SessionModel, error) {
	s := &models.SessionModel{
		UserID:    userID,
		IPAddress: info.IP,
		UserAgent: info.UserAgent,
		Location:  info.Location,
		Device:    info.Device,
	}
	if err := db.Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// ListForUser returns the user's sessions, newest first. No sessions is an
// empty slice, not an error.
func ListForUser(db *gorm.DB, userID string) ([]models.SessionModel, error) {
	sessions := make([]models.SessionModel, 0)
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// IsActive reports whether the session row still exists for this user. A
// revoked session fails this check even when its token has not expired yet.
func IsActive(db *gorm.DB, sessionID, userID string) (bool, error) {
	if sessionID == "" || userID == "" {
		return false, nil
	}
	var count int64
	err := db.Model(&models.SessionModel{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Count(&count).Error
	return count > 0, err
}

// Delete removes one session, scoped to its owner. Deleting a session that
// does not exist or belongs to someone else affects zero rows and is not an
// error.
func Delete(db *gorm.DB, sessionID, userID string) error {
	return db.Where("id = ? AND user_id = ?", sessionID, userID).
		Delete(&models.SessionModel{}).Error
}

// DeleteAllForUser removes every session for the user. This backs both
// "log out everywhere" and the account-deletion cascade.
func DeleteAllForUser(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).
		Delete(&models.SessionModel{}).Error
}

// DeleteAllOthers removes every session for the user except the current one,
// so the caller stays signed in.
func DeleteAllOthers(db *gorm.DB, currentSessionID, userID string) error {
	return db.Where("user_id = ? AND id <> ?", userID, currentSessionID).
		Delete(&models.SessionModel{}).Error
}

// Touch bumps UpdatedAt as last-seen bookkeeping. Best effort.
func Touch(db *gorm.DB, sessionID, userID string) {
	_ = db.Model(&models.SessionModel{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Update("updated_at", time.Now()).Error
}
