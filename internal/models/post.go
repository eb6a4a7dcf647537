package models

import "time"

// Post represents a short message authored by a user. Posts are immutable
// once created; Image is an opaque reference to an externally stored image.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	AuthorID  string    `json:"author_id" gorm:"index;type:varchar(36)" validate:"required"`
	Text      string    `json:"text" gorm:"type:varchar(140)" validate:"required,max=140"`
	Image     string    `json:"image" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
