package file

import (
	domain "file-exchange-api/internal/domain/file"
	"file-exchange-api/internal/domain/user"
)

func fromDBModel(model *StoredFile) *domain.StoredFile {
	var f = &domain.StoredFile{
		ID:         domain.ID(model.ID),
		Filename:   model.Filename,
		StorageKey: model.StorageKey,
		UploadedBy: user.ID(model.UploadedBy),

		UploadTime: model.UploadTime,
	}

	return f
}

func fromDBModels(models *StoredFiles) domain.StoredFiles {
	fs := make(domain.StoredFiles, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
