package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "file-exchange-api/internal/domain/user"
	"file-exchange-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByID, uint64(id)).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsVerified,

		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByEmail, email).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsVerified,

		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) CreateUser(ctx context.Context, req domain.User) (*domain.User, error) {
	u := new(User)

	err := r.db.QueryRow(
		ctx,
		InsertUser,
		req.Email, req.PasswordHash, req.Role,
	).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsVerified,

		&u.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) MarkVerified(ctx context.Context, email string) (*domain.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, MarkUserVerified, email).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsVerified,

		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}
