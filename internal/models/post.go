package models

import (
	"time"
)

// Post is a board entry owned by a user. Deleting the creator or the post
// cascades to its comments and post_tags rows at the database level.
type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatorID uint       `gorm:"not null" json:"creator_id"`
	Title     string     `gorm:"not null" json:"title"`
	Content   string     `gorm:"not null" json:"content"`
	AddedOn   time.Time  `gorm:"not null" json:"added_on"`
	ExpiresOn *time.Time `json:"expires_on,omitempty"`
	Creator   User       `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"creator,omitempty"`
	Comments  []Comment  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}
