package repository

import (
	"notesvc/internal/app/ds"
)

// Folder methods (ORM)

func (r *Repository) CreateFolder(userID uint, name string) (*ds.Folder, error) {
	folder := ds.Folder{
		UserID: userID,
		Name:   name,
	}
	if err := r.db.Create(&folder).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *Repository) GetFolderByID(folderID uint) (*ds.Folder, error) {
	var folder ds.Folder
	err := r.db.First(&folder, folderID).Error
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *Repository) GetFoldersByUserID(userID uint) ([]ds.Folder, error) {
	var folders []ds.Folder
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&folders).Error
	return folders, err
}

func (r *Repository) UpdateFolder(folderID uint, name string) error {
	return r.db.Model(&ds.Folder{}).Where("id = ?", folderID).Update("name", name).Error
}

func (r *Repository) DeleteFolder(folderID uint) error {
	return r.db.Delete(&ds.Folder{}, folderID).Error
}
