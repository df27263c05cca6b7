package user

const (
	SelectUserByID = `
		SELECT id, email, password_hash, role, is_verified, created_at
		FROM users
		WHERE id = $1
	`
	SelectUserByEmail = `
		SELECT id, email, password_hash, role, is_verified, created_at
		FROM users
		WHERE email = $1
	`
	InsertUser = `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING
		  id, email, password_hash, role, is_verified, created_at
	`
	MarkUserVerified = `
		UPDATE users
		SET is_verified = TRUE
		WHERE email = $1
		RETURNING
		  id, email, password_hash, role, is_verified, created_at
	`
)
