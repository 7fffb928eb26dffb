package catalog

// ProductView is the read-only projection the UI shell renders. It is
// recomputed on every query and never persisted.
type ProductView struct {
	Article          string
	Name             string
	Description      string
	CategoryName     string
	ManufacturerName string
	SupplierName     string
	UnitName         string
	Price            float64
	DiscountPercent  float64
	FinalPrice       float64
	QuantityInStock  int
	PhotoPath        string
}

// IsDiscounted reports whether a struck-through original price should show.
func (v ProductView) IsDiscounted() bool { return v.DiscountPercent > 0 }

// IsHighDiscount marks products highlighted for discounts above 15%.
func (v ProductView) IsHighDiscount() bool { return v.DiscountPercent > 15 }

// IsOutOfStock marks products with nothing left on the shelf.
func (v ProductView) IsOutOfStock() bool { return v.QuantityInStock == 0 }
