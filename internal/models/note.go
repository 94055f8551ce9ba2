package models

// NoteModel is a personal note, owned by exactly one user.
type NoteModel struct {
	Base
	UserID  string     `json:"user_id" gorm:"type:char(36);index;not null"`
	User    *UserModel `json:"-"       gorm:"foreignKey:UserID"`
	Content string     `json:"content" gorm:"type:longtext;not null"`
}

func (NoteModel) TableName() string { return "notes" }
