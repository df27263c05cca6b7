package file

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "file-exchange-api/internal/domain/file"
	"file-exchange-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchFiles(ctx context.Context) (domain.StoredFiles, error) {
	rows, err := r.db.Query(ctx, SelectFiles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs StoredFiles
	for rows.Next() {
		f := new(StoredFile)

		if err = rows.Scan(
			&f.ID,
			&f.Filename,
			&f.StorageKey,
			&f.UploadedBy,

			&f.UploadTime,
		); err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) FetchFileByID(ctx context.Context, id domain.ID) (*domain.StoredFile, error) {
	f := new(StoredFile)
	err := r.db.QueryRow(ctx, SelectFileByID, uint64(id)).Scan(
		&f.ID,
		&f.Filename,
		&f.StorageKey,
		&f.UploadedBy,

		&f.UploadTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), err
}

func (r *Repository) CreateFile(ctx context.Context, req domain.StoredFile) (*domain.StoredFile, error) {
	f := new(StoredFile)

	err := r.db.QueryRow(
		ctx,
		InsertFile,
		req.Filename, req.StorageKey, uint64(req.UploadedBy),
	).Scan(
		&f.ID,
		&f.Filename,
		&f.StorageKey,
		&f.UploadedBy,

		&f.UploadTime,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(f), err
}
