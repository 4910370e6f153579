package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		from, lim  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page clamps", 0, 10, 0, 10},
		{"negative page clamps", -5, 10, 0, 10},
		{"zero size defaults", 2, 0, 10, 10},
		{"oversized size defaults", 1, 500, 0, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			from, limit := Calculate(tc.page, tc.size)
			assert.Equal(t, tc.from, from)
			assert.Equal(t, tc.lim, limit)
		})
	}
}
