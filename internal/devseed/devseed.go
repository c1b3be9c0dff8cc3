// Package devseed populates a development database with sample accounts and
// contacts. Seeding goes through the regular services so validation, hashing,
// and uniqueness rules apply the same way they do for real requests.
package devseed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/target/contacts-api/internal/domain/model"
	apperrors "github.com/target/contacts-api/internal/errors"
	"github.com/target/contacts-api/internal/service"
)

// seedContactCount matches the size of the sample address book.
const seedContactCount = 50

// contactSeed fixes the pseudo-random source so repeated runs generate the
// same records and collide with the previous run instead of growing the table.
const contactSeed = 42

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Auth     *service.AuthService
	Contacts *service.ContactService
}

// Run executes the development seeding workflow. Records that already exist
// are left alone, so running it repeatedly is safe.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	failures := 0
	failures += seedAccounts(ctx, svcs.Auth, logger)
	failures += seedContacts(ctx, svcs.Contacts, logger)
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func devAccounts() []model.RegisterRequest {
	return []model.RegisterRequest{
		{Email: "dev@example.dev", Password: "devpassword1"},
		{Email: "demo@example.dev", Password: "devpassword1"},
	}
}

func seedAccounts(ctx context.Context, svc *service.AuthService, logger *slog.Logger) int {
	failures := 0
	for _, req := range devAccounts() {
		_, err := svc.Register(ctx, req)
		switch {
		case err == nil:
			if logger != nil {
				logger.InfoContext(ctx, "created dev account", "email", req.Email)
			}
		case apperrors.IsConflict(err):
			if logger != nil {
				logger.InfoContext(ctx, "dev account already exists", "email", req.Email)
			}
		default:
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create dev account", "email", req.Email, "error", err)
			}
			failures++
		}
	}
	return failures
}

func seedContacts(ctx context.Context, svc *service.ContactService, logger *slog.Logger) int {
	failures := 0
	created := 0
	existing := 0

	rng := rand.New(rand.NewSource(contactSeed)) //nolint:gosec // sample data, not key material
	for seq := 1; seq <= seedContactCount; seq++ {
		req := randomContact(rng, seq)
		_, err := svc.Create(ctx, req)
		switch {
		case err == nil:
			created++
		case apperrors.IsConflict(err):
			existing++
		default:
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create sample contact", "email", req.Email, "error", err)
			}
			failures++
		}
	}

	if logger != nil {
		logger.InfoContext(ctx, "sample contacts seeded",
			"created", created,
			"existing", existing,
			"failed", failures)
	}
	return failures
}

var seedFirstNames = []string{
	"Alice", "Bruno", "Carla", "Dmitri", "Elena", "Felix", "Greta", "Hugo",
	"Irene", "Jonas", "Katya", "Liam", "Maria", "Nadia", "Oscar", "Paula",
	"Quentin", "Rosa", "Stefan", "Tania",
}

var seedLastNames = []string{
	"Almeida", "Becker", "Costa", "Dietrich", "Engel", "Fischer", "Garcia",
	"Hoffmann", "Ivanov", "Jensen", "Keller", "Lopez", "Martins", "Novak",
	"Olsen", "Pereira", "Quast", "Richter", "Schmidt", "Torres",
}

var seedNotes = []string{
	"met at the conference",
	"neighbor",
	"book club",
	"former colleague",
}

// randomContact builds a sample contact. The sequence number keeps emails
// unique within a run and stable across runs.
func randomContact(rng *rand.Rand, seq int) *model.CreateContactRequest {
	first := seedFirstNames[rng.Intn(len(seedFirstNames))]
	last := seedLastNames[rng.Intn(len(seedLastNames))]

	req := &model.CreateContactRequest{
		FirstName: first,
		LastName:  last,
		Email:     fmt.Sprintf("%s.%s%d@example.dev", strings.ToLower(first), strings.ToLower(last), seq),
		Phone:     fmt.Sprintf("+49%09d", rng.Intn(1_000_000_000)),
		Birthday: time.Date(1950+rng.Intn(55), time.Month(1+rng.Intn(12)), 1+rng.Intn(28),
			0, 0, 0, 0, time.UTC),
	}
	if rng.Intn(3) == 0 {
		note := seedNotes[rng.Intn(len(seedNotes))]
		req.AdditionalData = &note
	}
	return req
}
