package file

import (
	domain "file-exchange-api/internal/domain/file"
)

func ToResponseFile(fDomain domain.StoredFile) StoredFile {
	var f = StoredFile{
		ID:         uint64(fDomain.ID),
		Filename:   fDomain.Filename,
		UploadedBy: uint64(fDomain.UploadedBy),
		UploadTime: fDomain.UploadTime,
	}

	return f
}

func ToResponseFiles(fsDomain domain.StoredFiles) StoredFiles {
	fs := make(StoredFiles, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}
