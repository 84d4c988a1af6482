// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/mbanking/bankledger/internal/domain"
	"github.com/mbanking/bankledger/pkg/dbpkg"
	"github.com/mbanking/bankledger/pkg/errorspkg"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewRepoPGS returns user RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

// NewTxRepoPGS returns user RepoPGS bound to an already running transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createUserQuery = `
INSERT INTO users (
    name,
    email,
    password
) VALUES (
    $1, $2, $3
) RETURNING id, name, email, password, created_at
`

const createProfileQuery = `
INSERT INTO profiles (
    identity_type,
    identity_number,
    user_id
) VALUES (
    $1, $2, $3
) RETURNING id, identity_type, identity_number, user_id
`

// Create creates the user together with its profile and then returns both.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.UserWithProfile, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithProfile

	db := r.db

	var tx *sql.Tx
	if r.conn != nil {
		var err error

		tx, err = r.conn.BeginTx(ctx, nil)
		if err != nil {
			l.Error().Err(err).Send()
			return result, errorspkg.ErrInternal
		}

		defer func() {
			_ = tx.Rollback()
		}()

		db = tx
	}

	row := db.QueryRowContext(ctx, createUserQuery, arg.Name, arg.Email, arg.Password)

	err := row.Scan(
		&result.ID,
		&result.Name,
		&result.Email,
		&result.Password,
		&result.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.UserWithProfile{}, mapUserError(err)
	}

	row = db.QueryRowContext(ctx, createProfileQuery, arg.IdentityType, arg.IdentityNumber, result.ID)

	err = row.Scan(
		&result.Profile.ID,
		&result.Profile.IdentityType,
		&result.Profile.IdentityNumber,
		&result.Profile.UserID,
	)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.UserWithProfile{}, mapUserError(err)
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			l.Error().Err(err).Send()
			return domain.UserWithProfile{}, errorspkg.ErrInternal
		}
	}

	return result, nil
}

const getQuery = `
SELECT
	u.id, u.name, u.email, u.password, u.created_at,
	p.id, p.identity_type, p.identity_number, p.user_id
FROM users u
JOIN profiles p ON p.user_id = u.id
WHERE u.id = $1
`

// Get returns the user with the given id together with its profile.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.UserWithProfile, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var u domain.UserWithProfile

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.CreatedAt,
		&u.Profile.ID,
		&u.Profile.IdentityType,
		&u.Profile.IdentityNumber,
		&u.Profile.UserID,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const listQuery = `
SELECT
	id, name, email, password, created_at
FROM users
ORDER BY id
`

// List returns all users in creation order.
func (r *RepoPGS) List(ctx context.Context) ([]domain.User, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.User{}

	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, u)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateUserQuery = `
UPDATE users
SET name = $1, email = $2, password = $3
WHERE id = $4
RETURNING id, name, email, password, created_at
`

const updateProfileQuery = `
UPDATE profiles
SET identity_type = $1, identity_number = $2
WHERE user_id = $3
RETURNING id, identity_type, identity_number, user_id
`

// Update updates the user and its profile and returns the updated rows.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateUserParams) (domain.UserWithProfile, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithProfile

	db := r.db

	var tx *sql.Tx
	if r.conn != nil {
		var err error

		tx, err = r.conn.BeginTx(ctx, nil)
		if err != nil {
			l.Error().Err(err).Send()
			return result, errorspkg.ErrInternal
		}

		defer func() {
			_ = tx.Rollback()
		}()

		db = tx
	}

	row := db.QueryRowContext(ctx, updateUserQuery, arg.Name, arg.Email, arg.Password, arg.ID)

	err := row.Scan(
		&result.ID,
		&result.Name,
		&result.Email,
		&result.Password,
		&result.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.UserWithProfile{}, mapUserError(err)
	}

	row = db.QueryRowContext(ctx, updateProfileQuery, arg.IdentityType, arg.IdentityNumber, arg.ID)

	err = row.Scan(
		&result.Profile.ID,
		&result.Profile.IdentityType,
		&result.Profile.IdentityNumber,
		&result.Profile.UserID,
	)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.UserWithProfile{}, mapUserError(err)
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			l.Error().Err(err).Send()
			return domain.UserWithProfile{}, errorspkg.ErrInternal
		}
	}

	return result, nil
}

const deleteQuery = `
DELETE FROM users
WHERE id = $1
RETURNING id
`

// Delete removes the user with the given id. The profile is removed by the
// ON DELETE CASCADE rule; users still owning accounts are rejected.
func (r *RepoPGS) Delete(ctx context.Context, id int32) error {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, deleteQuery, id)

	var deleted int32
	if err := row.Scan(&deleted); err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.ErrUserNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_owner_id_fkey" {
				return domain.ErrUserHasAccounts
			}
		}

		return errorspkg.ErrInternal
	}

	return nil
}

func mapUserError(err error) error {
	if err == sql.ErrNoRows {
		return domain.ErrUserNotFound
	}

	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code.Name() == "unique_violation" {
			switch pqErr.Constraint {
			case "users_email_key":
				return domain.ErrEmailAlreadyExists
			case "profiles_identity_number_key":
				return domain.ErrIdentityNumberAlreadyExists
			}
		}
	}

	return errorspkg.ErrInternal
}
