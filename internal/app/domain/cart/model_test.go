package cart

import (
	"testing"

	"github.com/plateful/backend/internal/app/domain/menu"
)

var catalogue = []menu.Item{
	{ID: 1, Name: "Margherita", Price: 9.99},
	{ID: 2, Name: "Pepperoni", Price: 11.99},
}

func TestValid(t *testing.T) {
	cases := []struct {
		name string
		c    Cart
		want bool
	}{
		{"empty cart", Cart{}, true},
		{"matching item", Cart{{ID: 1, Name: "Margherita", Price: 9.99}}, true},
		{"duplicates allowed", Cart{{ID: 1, Name: "Margherita", Price: 9.99}, {ID: 1, Name: "Margherita", Price: 9.99}}, true},
		{"wrong price", Cart{{ID: 1, Name: "Margherita", Price: 0.01}}, false},
		{"wrong name", Cart{{ID: 1, Name: "Hawaiian", Price: 9.99}}, false},
		{"unknown id", Cart{{ID: 99, Name: "Margherita", Price: 9.99}}, false},
		{"one bad item rejects all", Cart{{ID: 1, Name: "Margherita", Price: 9.99}, {ID: 3, Name: "Nope", Price: 1}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Valid(catalogue); got != tc.want {
				t.Fatalf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}
