package user

import "time"

// User represents a user account.
// PasswordHash is credential material handled only by the auth module and is
// never serialized toward clients.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null;type:text"`
	Name         string    `json:"name" gorm:"not null;type:text"`
	PasswordHash string    `json:"-" gorm:"not null;type:text"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Claims represents the identity carried by a validated token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
