package models

// SelectedExtra is a snapshot of an Additional taken at selection time, so
// later catalog price changes do not retroactively alter placed orders.
type SelectedExtra struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type LineItem struct {
	Product     Product         `json:"product"`
	Quantity    int             `json:"quantity"`
	Notes       string          `json:"notes,omitempty"`
	Additionals []SelectedExtra `json:"additionals,omitempty"`
}

// Subtotal keeps the original pricing rule: the extras subtotal is multiplied
// by the line quantity on top of each extra's own quantity.
func (li LineItem) Subtotal() float64 {
	extras := 0.0
	for _, add := range li.Additionals {
		extras += add.Price * float64(add.Quantity)
	}
	return li.Product.Price*float64(li.Quantity) + extras*float64(li.Quantity)
}

// Matches reports whether this line has the given identity key: same product,
// same notes and the same multiset of selected extras (ids and quantities).
func (li LineItem) Matches(productID, notes string, additionals []SelectedExtra) bool {
	if li.Product.ID != productID || li.Notes != notes {
		return false
	}
	return sameExtras(li.Additionals, additionals)
}

// extraKey pairs id and quantity so repeated ids with different quantities
// stay distinct selections.
type extraKey struct {
	id       string
	quantity int
}

func sameExtras(a, b []SelectedExtra) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[extraKey]int, len(a))
	for _, extra := range a {
		counts[extraKey{extra.ID, extra.Quantity}]++
	}
	for _, extra := range b {
		counts[extraKey{extra.ID, extra.Quantity}]--
	}
	for _, n := range counts {
		if n != 0 {
			return false
		}
	}
	return true
}

// Cart is the session's mutable list of line items. Lines with the same
// identity key (product id, notes, extras multiset) are merged on insertion;
// operations on a missing line are silent no-ops.
type Cart struct {
	Items []LineItem `json:"items"`
}

// AddLine inserts a new line or increments the quantity of the line matching
// the identity key. The extras list is preserved as given; it is part of the
// identity key and must not be normalized here.
func (c *Cart) AddLine(product Product, additionals []SelectedExtra, notes string) {
	for i := range c.Items {
		if c.Items[i].Matches(product.ID, notes, additionals) {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, LineItem{
		Product:     product,
		Quantity:    1,
		Notes:       notes,
		Additionals: additionals,
	})
}

// QuickAdd adds one unit of a product with no notes and no extras. It only
// merges into lines that are equally plain, so it never increments a
// customized line of the same product.
func (c *Cart) QuickAdd(product Product) {
	c.AddLine(product, nil, "")
}

// RemoveLine deletes the line matching the identity key exactly.
func (c *Cart) RemoveLine(productID, notes string, additionals []SelectedExtra) {
	for i := range c.Items {
		if c.Items[i].Matches(productID, notes, additionals) {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the matching line's quantity. Quantity zero removes
// the line instead of storing a zero-quantity line.
func (c *Cart) SetQuantity(productID string, quantity int, notes string, additionals []SelectedExtra) {
	if quantity <= 0 {
		c.RemoveLine(productID, notes, additionals)
		return
	}
	for i := range c.Items {
		if c.Items[i].Matches(productID, notes, additionals) {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// EstimatedTime is the summed preparation time in minutes.
func (c *Cart) EstimatedTime() int {
	total := 0
	for _, item := range c.Items {
		total += item.Product.PreparationTime * item.Quantity
	}
	return total
}

// ItemCount is the number of units across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
