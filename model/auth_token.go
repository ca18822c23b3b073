package model

import "time"

// AuthToken is an opaque API/session token issued by the token-auth endpoint.
// Tokens never expire; revocation is deletion of the row.
type AuthToken struct {
	Token     string `gorm:"primaryKey"`
	UserID    string `gorm:"not null"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
}
