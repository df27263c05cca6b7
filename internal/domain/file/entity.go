package file

import (
	"time"

	"file-exchange-api/internal/domain/user"
)

type (
	ID         uint64
	StoredFile struct {
		ID         ID
		Filename   string
		StorageKey string
		UploadedBy user.ID

		UploadTime time.Time
	}
	StoredFiles []*StoredFile
)
