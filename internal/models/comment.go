package models

import (
	"time"
)

// Comment is a user's reply on a post. EditedOn is set whenever the content
// changes. DeletedOn exists in the schema for a future soft-delete flow but
// no current operation reads or writes it; removal is a hard delete.
type Comment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	PostID    uint       `gorm:"not null" json:"post_id"`
	UserID    uint       `gorm:"not null" json:"user_id"`
	Content   string     `gorm:"not null" json:"content"`
	AddedOn   time.Time  `gorm:"not null" json:"added_on"`
	EditedOn  *time.Time `json:"edited_on,omitempty"`
	DeletedOn *time.Time `json:"-"`
	Post      Post       `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
