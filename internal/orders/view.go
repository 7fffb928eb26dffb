package orders

import (
	"strconv"
	"time"

	"bootstore-backoffice/internal/models"
)

// unknownName substitutes lookup names that no longer resolve.
const unknownName = "unknown"

// OrderView is the read-only projection of an order for display, recomputed
// on every load.
type OrderView struct {
	ID            uint
	Article       string
	StatusName    string
	PickupAddress string
	OrderDate     time.Time
	DeliveryDate  time.Time
	ReceiptCode   int
}

// DisplayArticle derives the user-facing article of an order. Three tiers:
// the first line's product article, then "ORD-<receiptCode>", then the raw
// order id for legacy rows without a receipt code.
func DisplayArticle(o models.Order) string {
	if len(o.Lines) > 0 && o.Lines[0].Product.Article != "" {
		return o.Lines[0].Product.Article
	}
	if o.ReceiptCode != 0 {
		return "ORD-" + strconv.Itoa(o.ReceiptCode)
	}
	return strconv.FormatUint(uint64(o.ID), 10)
}

// NewOrderView projects an order; the status and pickup point relations are
// expected preloaded, with dangling references degrading to placeholders.
func NewOrderView(o models.Order) OrderView {
	status := o.Status.Name
	if status == "" {
		status = unknownName
	}
	pickup := o.PickupPoint.Address
	if pickup == "" {
		pickup = unknownName
	}
	return OrderView{
		ID:            o.ID,
		Article:       DisplayArticle(o),
		StatusName:    status,
		PickupAddress: pickup,
		OrderDate:     o.OrderDate,
		DeliveryDate:  o.DeliveryDate,
		ReceiptCode:   o.ReceiptCode,
	}
}
