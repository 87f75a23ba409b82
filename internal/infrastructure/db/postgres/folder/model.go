package folder

import (
	"time"
)

type (
	Folder struct {
		ID     uint64
		Name   string
		UserID uint64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Folders []*Folder
)
