package repository

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"notesvc/internal/app/ds"
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return NewWithDB(db)
}

// NewWithDB wraps an already opened connection; tests use it with sqlite.
func NewWithDB(db *gorm.DB) (*Repository, error) {
	err := db.AutoMigrate(
		&ds.User{},
		&ds.License{},
		&ds.LicenseKey{},
		&ds.Folder{},
		&ds.Note{},
		&ds.NoteVersion{},
		&ds.NoteFile{},
		&ds.NoteTag{},
		&ds.TaskColumn{},
		&ds.Task{},
		&ds.TaskComment{},
		&ds.TaskFile{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}
