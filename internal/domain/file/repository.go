package file

import (
	"context"
)

type Repository interface {
	FetchFiles(ctx context.Context) (StoredFiles, error)
	FetchFileByID(ctx context.Context, id ID) (*StoredFile, error)
	CreateFile(ctx context.Context, req StoredFile) (*StoredFile, error)
}
