package session

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bootstore-backoffice/internal/models"
)

// ErrInvalidCredentials is returned when no user matches the login/password
// pair. Callers must not learn which of the two was wrong.
var ErrInvalidCredentials = errors.New("session: invalid credentials")

// Authenticate looks up the user by login and password and returns a session
// for it, with the role name resolved.
func Authenticate(db *gorm.DB, login, password string) (Session, error) {
	var user models.User
	err := db.Preload("Role").
		Where("login = ? AND password = ?", login, password).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("authenticate %q: %w", login, err)
	}
	return Session{
		UserID:   user.ID,
		RoleID:   user.RoleID,
		FullName: user.FullName,
		RoleName: user.Role.Name,
	}, nil
}
