package orders_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bootstore-backoffice/internal/orders"
)

func TestNextReceiptCode(t *testing.T) {
	tests := []struct {
		name     string
		existing []int
		want     int
	}{
		{"empty starts above the floor", nil, 901},
		{"takes the max, not the last", []int{900, 905, 903}, 906},
		{"single code", []int{901}, 902},
		{"codes below the floor are ignored", []int{12, 37}, 901},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orders.NextReceiptCode(tt.existing))
		})
	}
}
