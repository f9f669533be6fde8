package menu

// Item is one entry of the static menu catalogue. Price is in dollars.
type Item struct {
	ID    int     `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
}
