package db

import (
	"errors"

	"gorm.io/gorm"

	"bootstore-backoffice/internal/models"
	"bootstore-backoffice/session"
)

// Seed inserts the baseline lookup rows and the fixed role set. It is
// idempotent; rows already present by name are left alone.
func Seed(db *gorm.DB) error {
	roles := []models.Role{
		{ID: session.RoleAdmin, Name: "Administrator"},
		{ID: session.RoleManager, Name: "Manager"},
		{ID: session.RoleClient, Name: "Client"},
	}
	for _, r := range roles {
		var existing models.Role
		err := db.Where("name = ?", r.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&r).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	statuses := []models.OrderStatus{
		{Name: "New"}, {Name: "Processing"}, {Name: "Completed"}, {Name: "Cancelled"},
	}
	for _, s := range statuses {
		var existing models.OrderStatus
		err := db.Where("name = ?", s.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&s).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	units := []models.Unit{
		{Name: "pair"}, {Name: "piece"},
	}
	for _, u := range units {
		var existing models.Unit
		err := db.Where("name = ?", u.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&u).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
