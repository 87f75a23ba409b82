package user

const (
	SelectUserByEmail = `
		SELECT id, uuid, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	SelectUserByUsername = `
		SELECT id, uuid, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	InsertUser = `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING
		  id, uuid, username, email, password_hash, created_at, updated_at
	`
	SelectIdByUUID = `SELECT id FROM users WHERE uuid = $1::uuid`
)
