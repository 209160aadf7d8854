package shopping_test

import (
	"testing"

	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/stretchr/testify/assert"
)

func TestCapitalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "lower ascii", input: "milk and bread", expected: "Milk and bread"},
		{name: "already upper", input: "Milk", expected: "Milk"},
		{name: "cyrillic", input: "молоко", expected: "Молоко"},
		{name: "digit first", input: "2 eggs", expected: "2 eggs"},
		{name: "invalid utf8", input: "\xffmilk", expected: "\xffmilk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shopping.CapitalizeName(tt.input))
		})
	}
}
