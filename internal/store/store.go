// Package store is the GORM-backed repository for the back office. It owns
// all persistence concerns (queries, preloading, transactions, tracking) and
// maps storage failures onto a small error taxonomy, so the services above
// it stay free of driver details.
package store

import (
	"context"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// Transaction runs fn against a Store bound to a single database
// transaction. Any error from fn rolls the whole unit back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
