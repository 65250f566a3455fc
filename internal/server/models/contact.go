package models

import "time"

// Contact is an address book entry. OwnerID is always the creating user.
type Contact struct {
	ID        string
	OwnerID   string
	Name      string
	Email     string
	Phone     string
	Favorite  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactFields carries the values for a new contact.
type ContactFields struct {
	Name     string
	Email    string
	Phone    string
	Favorite bool
}

// ContactPatch is a partial update; nil fields are left unchanged.
type ContactPatch struct {
	Name  *string
	Email *string
	Phone *string
}

// Empty reports whether the patch changes nothing.
func (p ContactPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil
}
