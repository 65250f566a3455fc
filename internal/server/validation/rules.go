package validation

import "github.com/dmitrijs2005/contactbook/internal/server/models"

type Signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64,haslower,hasupper,hasdigit,hasspecial,nowhitespace,latin,notcommon"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (VerifyRequest) messages() map[string]string {
	return map[string]string{"email.required": "missing required field email"}
}

type ContactCreate struct {
	Name     string `json:"name" validate:"required,min=5"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=9"`
	Favorite bool   `json:"favorite"`
}

func (c ContactCreate) Fields() models.ContactFields {
	return models.ContactFields{Name: c.Name, Email: c.Email, Phone: c.Phone, Favorite: c.Favorite}
}

// ContactUpdate is a partial update; absent fields are nil.
type ContactUpdate struct {
	Name  *string `json:"name" validate:"omitnil,min=5"`
	Email *string `json:"email" validate:"omitnil,email"`
	Phone *string `json:"phone" validate:"omitnil,min=9"`
}

func (c ContactUpdate) precheck() error {
	if c.Patch().Empty() {
		return NewError("missing fields")
	}
	return nil
}

func (c ContactUpdate) Patch() models.ContactPatch {
	return models.ContactPatch{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

type Favorite struct {
	Favorite *bool `json:"favorite" validate:"required"`
}
