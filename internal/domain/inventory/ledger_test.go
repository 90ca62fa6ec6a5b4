package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/paintshop-api/internal/domain/inventory"
)

func TestFitsScale(t *testing.T) {
	cases := []struct {
		value string
		fits  bool
	}{
		{"12", true},
		{"0.125", true},
		{"1.2000", true},
		{"0.0004", false},
		{"-2.0001", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.fits, inventory.FitsScale(dec(tc.value), inventory.QuantityScale), tc.value)
	}
	assert.True(t, inventory.FitsScale(dec("4.2001"), inventory.PriceScale))
}
