package file

import (
	"time"
)

type (
	StoredFile struct {
		ID         uint64
		Filename   string
		StorageKey string
		UploadedBy uint64

		UploadTime time.Time
	}
	StoredFiles []*StoredFile
)
