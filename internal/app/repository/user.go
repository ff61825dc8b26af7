package repository

import (
	"time"

	"notesvc/internal/app/ds"
	"notesvc/internal/app/role"
)

// User methods (ORM)

func (r *Repository) GetUserByID(id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByLogin(login string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("login = ?", login).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UserExistsByLogin(login string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("login = ?", login).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Count(&count).Error
	return count, err
}

func (r *Repository) CreateUser(login, password, fullName string, userRole role.Role) (*ds.User, error) {
	user := ds.User{
		Login:        login,
		Password:     password,
		FullName:     fullName,
		Role:         userRole,
		LastSignedIn: time.Now(),
	}

	err := r.db.Create(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Repository) GetAllUsers() ([]ds.User, error) {
	var users []ds.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// UpdateUser applies a partial update of mutable profile fields.
func (r *Repository) UpdateUser(userID uint, fields map[string]interface{}) error {
	return r.db.Model(&ds.User{}).Where("id = ?", userID).Updates(fields).Error
}

func (r *Repository) UpdateUserRole(userID uint, userRole role.Role) error {
	return r.db.Model(&ds.User{}).Where("id = ?", userID).Update("role", userRole).Error
}

func (r *Repository) UpdateUserLastSignedIn(userID uint) error {
	return r.db.Model(&ds.User{}).Where("id = ?", userID).Update("last_signed_in", time.Now()).Error
}

func (r *Repository) DeleteUser(userID uint) error {
	return r.db.Delete(&ds.User{}, userID).Error
}
