package orders

// ReceiptCodeFloor seeds code generation for an empty order table; the first
// order ever created gets 901.
const ReceiptCodeFloor = 900

// NextReceiptCode derives the next unique order reference from a fresh
// snapshot of existing codes. Uniqueness is ultimately enforced by the
// store's unique index; callers must treat a duplicate-key failure as
// retryable.
func NextReceiptCode(existing []int) int {
	max := ReceiptCodeFloor
	for _, code := range existing {
		if code > max {
			max = code
		}
	}
	return max + 1
}
