package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkalnins/auctionhub/internal/common"
	"github.com/dkalnins/auctionhub/internal/dbx"
	"github.com/dkalnins/auctionhub/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint names from 00001_create_users.sql. The unique constraints, not
// the application-level pre-check, are the authority on duplicates: two
// concurrent registrations with the same username cannot both commit.
const (
	emailConstraint    = "users_email_key"
	usernameConstraint = "users_username_key"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, full_name, email, username, password_hash)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.FullName, user.Email, user.Username, user.PasswordHash).Scan(&user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case emailConstraint:
				return nil, common.ErrEmailTaken
			case usernameConstraint:
				return nil, common.ErrUsernameTaken
			}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByIdentifier looks a user up by email or username, whichever matches.
func (r *PostgresRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query :=
		`SELECT id, full_name, email, username, password_hash, created_at FROM users
		 WHERE email = $1 OR username = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, identifier))
}

// GetByEmailOrUsername returns an existing user matching either field.
// Used by the registration pre-check to pick the precise conflict message.
func (r *PostgresRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	query :=
		`SELECT id, full_name, email, username, password_hash, created_at FROM users
		 WHERE email = $1 OR username = $2
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, email, username))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, full_name, email, username, password_hash, created_at FROM users
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
