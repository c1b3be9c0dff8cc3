package data

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/target/contacts-api/internal/data/pgxutil"
	"github.com/target/contacts-api/internal/domain/model"
	apperrors "github.com/target/contacts-api/internal/errors"
)

// UserRepo provides database operations for credential records.
// Errors are mapped through the application taxonomy: a duplicate email
// surfaces as Conflict, a missing row as NotFound.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// SQL query constants for static queries.
const (
	userColumns = `id, email, password_hash, active, verified, avatar_url, role,
		       password_changed_at, created_at, updated_at`

	userInsertQuery = `
		INSERT INTO users (email, password_hash, password_changed_at, created_at)
		VALUES ($1, $2, $3, $3)
		RETURNING ` + userColumns

	userGetByEmailQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1`

	userUpdatePasswordQuery = `
		UPDATE users
		SET password_hash = $2, password_changed_at = $3, updated_at = $3
		WHERE email = $1
		RETURNING ` + userColumns

	userUpdateAvatarQuery = `
		UPDATE users
		SET avatar_url = $2, updated_at = $3
		WHERE email = $1
		RETURNING ` + userColumns
)

// Create inserts a new credential record. Uniqueness of the email is enforced
// by the database constraint; concurrent registrations race and exactly one
// wins, the other receives a Conflict.
func (r *UserRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	now := r.timeProvider.Now().UTC()
	return r.queryOne(ctx, userInsertQuery, params.Email, params.PasswordHash, now)
}

// GetByEmail retrieves a credential record by its identity.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.queryOne(ctx, userGetByEmailQuery, email)
}

// UpdatePassword replaces the stored hash and advances password_changed_at so
// session tokens issued before the rotation can be rejected.
func (r *UserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) (*model.User, error) {
	now := r.timeProvider.Now().UTC()
	return r.queryOne(ctx, userUpdatePasswordQuery, email, passwordHash, now)
}

// UpdateAvatar sets the avatar reference URL for a credential record.
func (r *UserRepo) UpdateAvatar(ctx context.Context, email, avatarURL string) (*model.User, error) {
	now := r.timeProvider.Now().UTC()
	return r.queryOne(ctx, userUpdateAvatarQuery, email, avatarURL, now)
}

// queryOne executes a query expected to return exactly one user row.
func (r *UserRepo) queryOne(ctx context.Context, q string, args ...any) (*model.User, error) {
	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
