package core

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/target/contacts-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// ErrProfileNotCached is returned by ProfileCache.Get when no snapshot exists
// for the identity (key missing or expired). It means "not cached", which is
// a normal outcome distinct from "user does not exist".
var ErrProfileNotCached = errors.New("profile not cached")

// UserRepository defines the interface for credential record operations.
// The system of record is the sole durable owner of these records.
type UserRepository interface {
	Create(ctx context.Context, params model.CreateUserParams) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdatePassword replaces the stored hash and advances password_changed_at,
	// invalidating session tokens issued before the rotation.
	UpdatePassword(ctx context.Context, email, passwordHash string) (*model.User, error)
	UpdateAvatar(ctx context.Context, email, avatarURL string) (*model.User, error)
}

// ProfileCache defines the interface for the volatile profile snapshot mirror.
// It is a derived, disposable view and must never be treated as authoritative.
type ProfileCache interface {
	Put(ctx context.Context, user *model.User, ttl time.Duration) error
	// Get returns ErrProfileNotCached on a miss.
	Get(ctx context.Context, email string) (*model.User, error)
	Delete(ctx context.Context, email string) error
}

// ContactRepository defines the interface for contact data operations.
type ContactRepository interface {
	Create(ctx context.Context, req *model.CreateContactRequest) (*model.Contact, error)
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	List(ctx context.Context, opts model.ContactsListOptions) ([]*model.Contact, error)
	// Count returns the number of contacts matching the list filters,
	// ignoring paging.
	Count(ctx context.Context, opts model.ContactsListOptions) (int, error)
	Update(ctx context.Context, id string, req model.UpdateContactRequest) (*model.Contact, error)
	Delete(ctx context.Context, id string) (bool, error)
	// UpcomingBirthdays returns contacts whose birthday falls within the next
	// seven days.
	UpcomingBirthdays(ctx context.Context) ([]*model.Contact, error)
}

// UploadParams groups parameters for MediaStore.Upload.
type UploadParams struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// MediaStore defines the interface for avatar binary storage.
// Upload returns the public reference URL of the stored object.
type MediaStore interface {
	Upload(ctx context.Context, params UploadParams) (string, error)
}

// ResetNotifier delivers a password reset token out-of-band.
// The orchestrator only generates the token and hands it off.
type ResetNotifier interface {
	SendResetToken(ctx context.Context, email, token string) error
}
