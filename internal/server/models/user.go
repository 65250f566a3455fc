// Package models defines server-side data models persisted by the stores.
package models

import "time"

// User is an account. Token is nil while logged out; VerificationToken is nil
// once the email has been verified.
type User struct {
	ID                string
	Email             string
	PasswordHash      string
	Token             *string
	Subscription      string
	AvatarURL         string
	Verified          bool
	VerificationToken *string
	CreatedAt         time.Time
}
