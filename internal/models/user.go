package models

import "time"

// User & role models. The guest pseudo-identity (role id 4) is never stored;
// it is fabricated in-process by the session package.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Login     string `gorm:"size:100;not null;unique"`
	Password  string `gorm:"size:100;not null"`
	FullName  string `gorm:"size:200;not null"`
	RoleID    uint
	Role      Role `gorm:"foreignKey:RoleID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Role struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:50;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
