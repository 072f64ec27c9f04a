package domain

// MenuItem is an immutable catalog entry. The catalog service owns these;
// cart and order code only copies them by value.
type MenuItem struct {
	ID          string  `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64 `json:"price" bson:"price"`
	Category    string  `json:"category" bson:"category"`
	IsVeg       bool    `json:"isVeg" bson:"is_veg"`
}

// CartLine is a menu item plus the quantity selected. A cart holds at most
// one line per item id, and quantity is always >= 1; a line that would drop
// to zero or below is removed instead.
type CartLine struct {
	MenuItem `bson:",inline"`
	Quantity int `json:"quantity" bson:"quantity"`
}

// Subtotal recomputes the price sum over the given lines. Never cached.
func Subtotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// ItemCount recomputes the quantity sum over the given lines.
func ItemCount(lines []CartLine) int {
	var count int
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

// CopyLines returns a value copy preserving insertion order.
func CopyLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}
