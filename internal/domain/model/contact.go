package model

import (
	"strings"
	"time"

	apperrors "github.com/target/contacts-api/internal/errors"
)

const maxContactNameLen = 255

// Contact represents an address book entry.
type Contact struct {
	ID             string    `json:"id"                        db:"id"`
	FirstName      string    `json:"first_name"                db:"first_name"`
	LastName       string    `json:"last_name"                 db:"last_name"`
	Email          string    `json:"email"                     db:"email"`
	Phone          string    `json:"phone"                     db:"phone"`
	Birthday       time.Time `json:"birthday"                  db:"birthday"`
	AdditionalData *string   `json:"additional_data,omitempty" db:"additional_data"`
	CreatedAt      time.Time `json:"created_at"                db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"                db:"updated_at"`
}

// CreateContactRequest represents parameters to create a Contact.
type CreateContactRequest struct {
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Birthday       time.Time `json:"birthday"`
	AdditionalData *string   `json:"additional_data,omitempty"`
}

// Normalize trims surrounding whitespace from name and email fields.
func (r *CreateContactRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
}

// Validate checks the request shape.
func (r *CreateContactRequest) Validate() error {
	if r.FirstName == "" {
		return apperrors.ValidationField("first_name", "First name is required.")
	}
	if len(r.FirstName) > maxContactNameLen {
		return apperrors.ValidationField("first_name", "First name is too long.")
	}
	if r.LastName == "" {
		return apperrors.ValidationField("last_name", "Last name is required.")
	}
	if len(r.LastName) > maxContactNameLen {
		return apperrors.ValidationField("last_name", "Last name is too long.")
	}
	if r.Email == "" {
		return apperrors.ValidationField("email", "Email is required.")
	}
	if r.Phone == "" {
		return apperrors.ValidationField("phone", "Phone is required.")
	}
	if r.Birthday.IsZero() {
		return apperrors.ValidationField("birthday", "Birthday is required.")
	}
	return nil
}

// UpdateContactRequest represents parameters to update a Contact.
// Nil fields are left unchanged.
type UpdateContactRequest struct {
	FirstName      *string    `json:"first_name,omitempty"`
	LastName       *string    `json:"last_name,omitempty"`
	Email          *string    `json:"email,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	Birthday       *time.Time `json:"birthday,omitempty"`
	AdditionalData *string    `json:"additional_data,omitempty"`
}

// Validate checks the request shape.
func (r *UpdateContactRequest) Validate() error {
	if r.FirstName != nil && strings.TrimSpace(*r.FirstName) == "" {
		return apperrors.ValidationField("first_name", "First name cannot be empty.")
	}
	if r.LastName != nil && strings.TrimSpace(*r.LastName) == "" {
		return apperrors.ValidationField("last_name", "Last name cannot be empty.")
	}
	if r.Email != nil && strings.TrimSpace(*r.Email) == "" {
		return apperrors.ValidationField("email", "Email cannot be empty.")
	}
	return nil
}

// ContactsListOptions controls paging and filtering for listing contacts.
// Notes:
// - FirstName, LastName, and Email match via ILIKE substring.
// - When any filter is set, paging still applies after filtering.
type ContactsListOptions struct {
	Limit     int
	Offset    int
	FirstName *string
	LastName  *string
	Email     *string
}

// HasFilters reports whether any search filter is set.
func (o ContactsListOptions) HasFilters() bool {
	return o.FirstName != nil || o.LastName != nil || o.Email != nil
}
