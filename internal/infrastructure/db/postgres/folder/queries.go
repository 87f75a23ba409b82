package folder

const (
	SelectFolder = `
		SELECT id, folder_name, user_id, created_at, updated_at
		FROM folders
		WHERE user_id = $1 AND folder_name = $2
	`
	InsertFolder = `
		INSERT INTO folders (user_id, folder_name)
		VALUES ($1, $2)
		RETURNING
		  id, folder_name, user_id, created_at, updated_at
	`
	RenameFolder = `
		UPDATE folders
		SET folder_name = $3,
		    updated_at = now()
		WHERE user_id = $1 AND folder_name = $2
		RETURNING
		  id, folder_name, user_id, created_at, updated_at
	`
	DeleteFolder = `
		DELETE FROM folders
		WHERE user_id = $1 AND folder_name = $2
	`
)
