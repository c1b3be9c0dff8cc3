package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/target/contacts-api/internal/core"
	"github.com/target/contacts-api/internal/domain/model"
)

const (
	defaultContactsLimit = 50
	maxContactsLimit     = 1000
)

// ContactServiceOptions groups dependencies for ContactService.
type ContactServiceOptions struct {
	Repo   core.ContactRepository
	Logger *slog.Logger
}

// ContactService provides business logic for address book operations.
type ContactService struct {
	repo   core.ContactRepository
	logger *slog.Logger
}

// NewContactService constructs a new ContactService.
func NewContactService(opts ContactServiceOptions) *ContactService {
	if opts.Repo == nil {
		panic("ContactRepository is required")
	}
	return &ContactService{
		repo:   opts.Repo,
		logger: opts.Logger,
	}
}

// Create creates a new contact.
func (s *ContactService) Create(ctx context.Context, req *model.CreateContactRequest) (*model.Contact, error) {
	contact, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "contact created", "id", contact.ID, "email", contact.Email)
	}
	return contact, nil
}

// GetByID retrieves a contact by ID.
func (s *ContactService) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	contact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get contact by id: %w", err)
	}
	return contact, nil
}

// List retrieves contacts with pagination and optional filters.
func (s *ContactService) List(ctx context.Context, opts model.ContactsListOptions) ([]*model.Contact, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultContactsLimit
	}
	if opts.Limit > maxContactsLimit {
		opts.Limit = maxContactsLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.repo.List(ctx, opts)
}

// Count returns the number of contacts matching the list filters.
func (s *ContactService) Count(ctx context.Context, opts model.ContactsListOptions) (int, error) {
	return s.repo.Count(ctx, opts)
}

// Update updates fields of a contact.
func (s *ContactService) Update(
	ctx context.Context,
	id string,
	req model.UpdateContactRequest,
) (*model.Contact, error) {
	contact, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "contact updated", "id", contact.ID)
	}
	return contact, nil
}

// Delete deletes a contact by ID. Returns false when no such contact exists.
func (s *ContactService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}
	if deleted && s.logger != nil {
		s.logger.InfoContext(ctx, "contact deleted", "id", id)
	}
	return deleted, nil
}

// UpcomingBirthdays returns contacts with a birthday in the next seven days.
func (s *ContactService) UpcomingBirthdays(ctx context.Context) ([]*model.Contact, error) {
	return s.repo.UpcomingBirthdays(ctx)
}
