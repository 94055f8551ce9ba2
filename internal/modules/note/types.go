package note

import "time"

type NoteDTO struct {
	Content string `json:"content" binding:"required"`
}

type noteResponse struct {
	ID       string    `json:"id"`
	Content  string    `json:"content"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}
