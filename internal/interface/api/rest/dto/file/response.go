package file

import (
	"time"
)

type (
	StoredFile struct {
		ID         uint64    `json:"id"`
		Filename   string    `json:"filename"`
		UploadedBy uint64    `json:"uploaded_by"`
		UploadTime time.Time `json:"upload_time"`
	}
	StoredFiles []StoredFile

	DownloadLink struct {
		DownloadLink string `json:"download_link"`
		Message      string `json:"message"`
	}
)
