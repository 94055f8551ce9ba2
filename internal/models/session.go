package models

// SessionModel is one authenticated login instance. The request-origin
// columns are snapshots taken at login and are never recomputed afterwards;
// only UpdatedAt moves, as last-seen bookkeeping.
type SessionModel struct {
	Base
	UserID    string     `json:"user_id"    gorm:"type:char(36);index;not null"`
	User      *UserModel `json:"-"          gorm:"foreignKey:UserID"`
	IPAddress string     `json:"ip_address"`
	UserAgent string     `json:"user_agent" gorm:"type:text"`
	Location  *string    `json:"location"`
	Device    *string    `json:"device"`
}

func (SessionModel) TableName() string { return "sessions" }
