package catalog

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is a curator account: someone allowed to write SAUCE edits back
// to disk over the SSH gallery. Anonymous connections get read-only
// browse access without one.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex"`
	PasswordHash string
}

// CreateUser registers a new curator account.
func (s *Store) CreateUser(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	user := User{
		Username:     username,
		PasswordHash: string(hash),
	}

	result := s.DB.Create(&user)
	return result.Error
}

// FindUserByUsername looks up a curator by name.
func (s *Store) FindUserByUsername(username string) (*User, error) {
	var user User
	result := s.DB.Where("username = ?", username).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// RemoveUser deletes a curator account.
func (s *Store) RemoveUser(username string) error {
	return s.DB.Unscoped().
		Where("username = ?", username).
		Delete(&User{}).Error
}

// RenameUser changes a curator's username.
func (s *Store) RenameUser(oldUsername, newUsername string) error {
	return s.DB.Model(&User{}).
		Where("username = ?", oldUsername).
		Update("username", newUsername).Error
}

// UpdatePassword replaces a curator's password.
func (s *Store) UpdatePassword(username, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 10)
	if err != nil {
		return err
	}

	return s.DB.Model(&User{}).
		Where("username = ?", username).
		Update("password_hash", string(hash)).Error
}

// Authenticate checks a username/password pair against the curator
// table. Used by the SSH gallery's PasswordHandler.
func (s *Store) Authenticate(username, password string) (*User, error) {
	var user User

	result := s.DB.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, result.Error
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid password")
	}

	return &user, nil
}
