package models

import "time"

// Product is a catalog entry. Article is the human-facing unique code and is
// immutable once the product is created; all four reference fields must
// resolve to existing lookup rows.
type Product struct {
	ID             uint   `gorm:"primaryKey"`
	Article        string `gorm:"size:40;not null;uniqueIndex"`
	Name           string `gorm:"size:200;not null"`
	Description    string `gorm:"size:1000"`
	CategoryID     uint
	Category       Category `gorm:"foreignKey:CategoryID"`
	ManufacturerID uint
	Manufacturer   Manufacturer `gorm:"foreignKey:ManufacturerID"`
	SupplierID     uint
	Supplier       Supplier `gorm:"foreignKey:SupplierID"`
	UnitID         uint
	Unit           Unit    `gorm:"foreignKey:UnitID"`
	Price          float64 `gorm:"not null"`
	// Percentage in [0,100]; range enforced by the product service.
	DiscountPercent float64 `gorm:"not null;default:0"`
	QuantityInStock int     `gorm:"not null;default:0"`
	// File name only (e.g. "1.jpg"); resolution to a path goes through the
	// media store.
	PhotoFileName string `gorm:"size:200"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
