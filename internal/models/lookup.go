package models

import "time"

// Lookup tables referenced by Product and Order. They are small, seeded at
// bootstrap, and only ever grow.

type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Manufacturer struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Supplier struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Unit is the sales unit of a product (pair, box, piece).
type Unit struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:50;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderStatus struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:50;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PickupPoint struct {
	ID        uint   `gorm:"primaryKey"`
	Address   string `gorm:"size:200;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
