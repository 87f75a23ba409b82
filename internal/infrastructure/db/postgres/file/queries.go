package file

const (
	SelectFileByUUID = `
		SELECT id, uuid, file_name, stored_name, user_id, file_size, storage_path, folder_id, uploaded_at, updated_at
		FROM files
		WHERE user_id = $1 AND uuid = $2
	`
	SelectFiles = `
		SELECT id, uuid, file_name, stored_name, user_id, file_size, storage_path, folder_id, uploaded_at, updated_at
		FROM files
		WHERE user_id = $1
		ORDER BY uploaded_at DESC
		LIMIT 50 OFFSET ( ($2 - 1) * 50 )
	`
	InsertFile = `
		INSERT INTO files (file_name, stored_name, user_id, file_size, storage_path, folder_id)
		VALUES ($1, $2, $3, $4, $5, NULL)
		RETURNING
		  id, uuid, file_name, stored_name, user_id, file_size, storage_path, folder_id, uploaded_at, updated_at
	`
	UpdateFilePlacement = `
		UPDATE files
		SET folder_id = $3,
		    storage_path = $4,
		    updated_at = now()
		WHERE user_id = $1 AND uuid = $2
		RETURNING
		  id, uuid, file_name, stored_name, user_id, file_size, storage_path, folder_id, uploaded_at, updated_at
	`
	DeleteFilesByFolder = `
		DELETE FROM files
		WHERE user_id = $1 AND folder_id = $2
	`
)
