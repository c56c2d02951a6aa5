package models

import (
	"time"
)

// Tag is a categorised label that can be attached to any number of posts.
// Tags have an independent lifecycle: deleting a tag only removes its
// post_tags links, never the posts themselves.
type Tag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description,omitempty"`
	Colour      string    `gorm:"not null" json:"colour"`
	AddedOn     time.Time `gorm:"not null" json:"added_on"`
}
