package models

import (
	"time"
)

// User is an account on the board. The password column holds a bcrypt hash
// and is never serialised. Deleting a user cascades to their posts and
// comments at the database level.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Admin     bool      `gorm:"not null;default:false" json:"admin"`
	Bio       *string   `json:"bio,omitempty"`
	AddedOn   time.Time `gorm:"not null" json:"added_on"`
	Posts     []Post    `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	Comments  []Comment `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}
