package httpx

import (
	"context"
	"net/http"
	"strconv"

	"github.com/target/contacts-api/internal/domain/model"
	apperrors "github.com/target/contacts-api/internal/errors"
)

// ContactServiceInterface defines the contact operations used by the HTTP layer.
type ContactServiceInterface interface {
	Create(ctx context.Context, req *model.CreateContactRequest) (*model.Contact, error)
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	List(ctx context.Context, opts model.ContactsListOptions) ([]*model.Contact, error)
	Count(ctx context.Context, opts model.ContactsListOptions) (int, error)
	Update(ctx context.Context, id string, req model.UpdateContactRequest) (*model.Contact, error)
	Delete(ctx context.Context, id string) (bool, error)
	UpcomingBirthdays(ctx context.Context) ([]*model.Contact, error)
}

// ContactHandlers contains HTTP handlers for contact operations.
type ContactHandlers struct {
	Svc ContactServiceInterface
}

// Create handles POST /api/contacts.
func (h *ContactHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateContactRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	contact, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, contact)
}

// List handles GET /api/contacts with optional paging and filter parameters.
func (h *ContactHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts := model.ContactsListOptions{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "skip"),
	}
	if v := r.URL.Query().Get("first_name"); v != "" {
		opts.FirstName = &v
	}
	if v := r.URL.Query().Get("last_name"); v != "" {
		opts.LastName = &v
	}
	if v := r.URL.Query().Get("email"); v != "" {
		opts.Email = &v
	}

	contacts, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	total, err := h.Svc.Count(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	WriteJSON(w, http.StatusOK, contacts)
}

// Get handles GET /api/contacts/{id}.
func (h *ContactHandlers) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, contact)
}

// Update handles PATCH /api/contacts/{id}.
func (h *ContactHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateContactRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	contact, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, contact)
}

// Delete handles DELETE /api/contacts/{id}.
func (h *ContactHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !deleted {
		WriteAppError(w, apperrors.NotFound("Contact not found."))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpcomingBirthdays handles GET /api/contacts/birthdays.
func (h *ContactHandlers) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Svc.UpcomingBirthdays(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, contacts)
}

// queryInt parses an integer query parameter, returning 0 when absent or invalid.
func queryInt(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
