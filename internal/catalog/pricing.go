package catalog

// FinalPrice returns the price after applying a percentage discount.
// A non-positive discount leaves the price untouched; 100 yields 0.
// Range validation of the discount belongs to the product service, not here.
func FinalPrice(price, discountPercent float64) float64 {
	if discountPercent <= 0 {
		return price
	}
	return price * (1 - discountPercent/100)
}
