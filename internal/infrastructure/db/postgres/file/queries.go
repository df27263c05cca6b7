package file

const (
	SelectFiles = `
		SELECT id, filename, storage_key, uploaded_by, upload_time
		FROM files
		ORDER BY id
	`
	SelectFileByID = `
		SELECT id, filename, storage_key, uploaded_by, upload_time
		FROM files
		WHERE id = $1
	`
	InsertFile = `
		INSERT INTO files (filename, storage_key, uploaded_by)
		VALUES ($1, $2, $3)
		RETURNING
		  id, filename, storage_key, uploaded_by, upload_time
	`
)
