package ports

import (
	"context"
	"mime/multipart"

	"file-exchange-api/internal/domain/file"
	"file-exchange-api/internal/domain/user"
)

type FileService interface {
	Upload(ctx context.Context, uploader *user.User, in *multipart.FileHeader) (*file.StoredFile, error)
	ListFiles(ctx context.Context) (file.StoredFiles, error)
	FileByID(ctx context.Context, id file.ID) (*file.StoredFile, error)
	FilePath(f *file.StoredFile) (string, error)
}
