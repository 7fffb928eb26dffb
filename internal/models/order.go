package models

import "time"

// Order is a customer order. ReceiptCode is a unique, monotonically assigned
// numeric reference; it backs the display article for orders without lines.
type Order struct {
	ID            uint `gorm:"primaryKey"`
	ReceiptCode   int  `gorm:"not null;uniqueIndex"`
	OrderDate     time.Time
	DeliveryDate  time.Time
	StatusID      uint
	Status        OrderStatus `gorm:"foreignKey:StatusID"`
	PickupPointID uint
	PickupPoint   PickupPoint `gorm:"foreignKey:PickupPointID"`
	UserID        uint        `gorm:"index"`
	Lines         []OrderLine `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderLine is owned exclusively by its Order and is removed together with
// it. A product appears at most once per order.
type OrderLine struct {
	ID             uint   `gorm:"primaryKey"`
	OrderID        uint   `gorm:"not null;index:idx_order_product,unique,priority:1"`
	ProductArticle string `gorm:"size:40;not null;index:idx_order_product,unique,priority:2"`
	Product        Product `gorm:"foreignKey:ProductArticle;references:Article"`
	Quantity       int     `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
