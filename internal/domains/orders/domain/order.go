package domain

// Order models a purchase order flowing through the notification pipeline.
// Amount is the unit price; Total stays zero until the order is processed.
type Order struct {
	ID        int64
	Amount    int64
	Quantity  int64
	Total     int64
	Processed bool
}

// NewOrder constructs an unprocessed order. Zero or negative amounts and
// quantities are accepted and propagate into the derived total as computed.
func NewOrder(amount, quantity int64) *Order {
	return &Order{Amount: amount, Quantity: quantity}
}

// Process derives the order total and marks the order processed. The
// computation is a pure function of Amount and Quantity, so reapplying it on a
// redelivered order converges to the same state.
func (o *Order) Process() {
	o.Total = o.Amount * o.Quantity
	o.Processed = true
}
