package auth

import "time"

// User is the account record. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (User) TableName() string { return "users" }

// Identity is the authenticated-user snapshot handed to the other modules.
// Posts and comments embed a copy of it at creation time.
type Identity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, ImageURL: u.ImageURL}
}
