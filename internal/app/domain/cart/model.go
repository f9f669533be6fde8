package cart

import "github.com/plateful/backend/internal/app/domain/menu"

// Item is one line of a shopping cart. It mirrors a menu entry exactly; the
// triple (id, name, price) must match a current catalogue item for the cart
// to be accepted.
type Item struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Cart is the ordered list of items pending checkout, keyed by token id.
type Cart []Item

// Valid reports whether every item matches a catalogue entry. An empty cart
// is always valid; a single mismatching item invalidates the whole cart.
func (c Cart) Valid(catalogue []menu.Item) bool {
	if len(c) == 0 {
		return true
	}
	for _, item := range c {
		if !matches(item, catalogue) {
			return false
		}
	}
	return true
}

func matches(item Item, catalogue []menu.Item) bool {
	for _, entry := range catalogue {
		if entry.ID == item.ID && entry.Name == item.Name && entry.Price == item.Price {
			return true
		}
	}
	return false
}
