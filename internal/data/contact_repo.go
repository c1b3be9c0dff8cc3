package data

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/target/contacts-api/internal/data/database"
	"github.com/target/contacts-api/internal/data/pgxutil"
	"github.com/target/contacts-api/internal/domain/model"
	apperrors "github.com/target/contacts-api/internal/errors"
)

// ContactRepo provides database operations for contacts.
type ContactRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewContactRepo creates a new ContactRepo with real time provider.
func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewContactRepoWithTimeProvider creates a new ContactRepo with a custom time provider (useful for tests).
func NewContactRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ContactRepo {
	return &ContactRepo{DB: db, timeProvider: tp}
}

// upcomingBirthdayWindowDays is the lookahead window for birthday reminders.
const upcomingBirthdayWindowDays = 7

// SQL query constants for static queries.
const (
	contactColumns = `id, first_name, last_name, email, phone, birthday, additional_data,
		          created_at, updated_at`

	contactInsertQuery = `
		INSERT INTO contacts (first_name, last_name, email, phone, birthday, additional_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + contactColumns

	contactGetByIDQuery = `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE id = $1`

	contactListAllQuery = `
		SELECT ` + contactColumns + `
		FROM contacts
		ORDER BY created_at DESC`
)

// contactColumnList returns the column list for dynamically built queries.
func contactColumnList() []string {
	return []string{
		"id",
		"first_name",
		"last_name",
		"email",
		"phone",
		"birthday",
		"additional_data",
		"created_at",
		"updated_at",
	}
}

// Create inserts a new contact.
func (r *ContactRepo) Create(ctx context.Context, req *model.CreateContactRequest) (*model.Contact, error) {
	if req == nil {
		return nil, apperrors.Validation("Contact payload is required.")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.timeProvider.Now().UTC()
	return r.queryOne(ctx, contactInsertQuery,
		req.FirstName,
		req.LastName,
		req.Email,
		req.Phone,
		req.Birthday,
		req.AdditionalData,
		createdAt,
	)
}

// GetByID retrieves a contact by ID.
func (r *ContactRepo) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	return r.queryOne(ctx, contactGetByIDQuery, id)
}

// List retrieves contacts with pagination and optional ILIKE filters on
// first name, last name, and email.
func (r *ContactRepo) List(ctx context.Context, opts model.ContactsListOptions) ([]*model.Contact, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query, args := database.BuildListQuery(r.buildContactQueryOptions(opts, limit, offset))

	var rowsOut []model.Contact
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Contact])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Contact, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the number of contacts matching the list filters. Paging
// options are ignored.
func (r *ContactRepo) Count(ctx context.Context, opts model.ContactsListOptions) (int, error) {
	queryOpts := []database.ListQueryOption{database.WithCountOnly()}
	for _, cond := range contactFilterConditions(opts) {
		queryOpts = append(queryOpts, database.WithCondition(cond))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("contacts", queryOpts...))

	var total int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&total)
	}); err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return total, nil
}

// Update updates fields of a contact. Nil fields are left unchanged.
func (r *ContactRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateContactRequest,
) (*model.Contact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)
	if setClause == "" {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := "UPDATE contacts SET " + setClause +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + contactColumns
	return r.queryOne(ctx, query, args...)
}

// buildUpdateClause builds the SQL SET clause and args for updating a contact.
func (r *ContactRepo) buildUpdateClause(req model.UpdateContactRequest) (string, []any) {
	setParts := make([]string, 0, 7)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.FirstName != nil {
		setParts = append(setParts, fmt.Sprintf("first_name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.FirstName))
	}
	if req.LastName != nil {
		setParts = append(setParts, fmt.Sprintf("last_name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.LastName))
	}
	if req.Email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("phone = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Phone))
	}
	if req.Birthday != nil {
		setParts = append(setParts, fmt.Sprintf("birthday = $%d", nextIdx()))
		args = append(args, *req.Birthday)
	}
	if req.AdditionalData != nil {
		setParts = append(setParts, fmt.Sprintf("additional_data = $%d", nextIdx()))
		args = append(args, *req.AdditionalData)
	}

	if len(setParts) == 0 {
		return "", nil
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// Delete deletes a contact by ID. Returns false when no row matched.
func (r *ContactRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return rows > 0, nil
}

// UpcomingBirthdays returns contacts whose birthday, moved to the current
// year, falls between today and seven days from now inclusive. Birthdays
// that wrap past the end of the year are not carried into January.
func (r *ContactRepo) UpcomingBirthdays(ctx context.Context) ([]*model.Contact, error) {
	var rowsOut []model.Contact
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, contactListAllQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Contact])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	now := r.timeProvider.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowEnd := today.AddDate(0, 0, upcomingBirthdayWindowDays)

	res := make([]*model.Contact, 0, len(rowsOut))
	for i := range rowsOut {
		b := rowsOut[i].Birthday
		thisYear := time.Date(today.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
		if !thisYear.Before(today) && !thisYear.After(windowEnd) {
			res = append(res, &rowsOut[i])
		}
	}
	return res, nil
}

// buildContactQueryOptions builds query options for contact listing with filters.
func (r *ContactRepo) buildContactQueryOptions(
	opts model.ContactsListOptions,
	limit, offset int,
) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(contactColumnList()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", "DESC"),
	}
	if opts.HasFilters() {
		queryOpts = append(queryOpts, database.WithConditions(contactFilterConditions(opts)...))
	}
	return database.NewListQueryOptions("contacts", queryOpts...)
}

// contactFilterConditions translates list filters into ILIKE conditions.
// Blank filters are dropped.
func contactFilterConditions(opts model.ContactsListOptions) []database.Condition {
	conds := make([]database.Condition, 0, 3)
	add := func(field string, value *string) {
		if value == nil {
			return
		}
		v := strings.TrimSpace(*value)
		if v == "" {
			return
		}
		conds = append(conds, database.WhereCond(field, database.ILike, "%"+v+"%"))
	}
	add("first_name", opts.FirstName)
	add("last_name", opts.LastName)
	add("email", opts.Email)
	return conds
}

// queryOne executes a query expected to return exactly one contact row.
func (r *ContactRepo) queryOne(ctx context.Context, q string, args ...any) (*model.Contact, error) {
	var out model.Contact
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Contact])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
