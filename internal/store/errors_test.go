package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	notNull := errors.New("NOT NULL constraint failed: products.name")
	check := errors.New("CHECK constraint failed: quantity_in_stock")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, ErrDuplicate},
		{"sqlite unique violation", errors.New("UNIQUE constraint failed: products.article"), ErrDuplicate},
		{"postgres unique violation", errors.New(`duplicate key value violates unique constraint "idx_orders_receipt_code"`), ErrDuplicate},
		{"gorm fk violation", gorm.ErrForeignKeyViolated, ErrIntegrity},
		{"sqlite fk violation", errors.New("FOREIGN KEY constraint failed"), ErrIntegrity},
		// Other constraint families are not referential failures and must
		// reach the caller unchanged.
		{"not null passes through", notNull, notNull},
		{"check passes through", check, check},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
