package repositories

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork makes transactional scope explicit. Multi-entity workflows
// (event + history + attendee, version publish + deactivation) run their
// writes via Do so they stay atomic even when refactored across repositories.
type UnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a UnitOfWork bound to db.
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do runs fn inside a transaction. The transaction commits when fn returns
// nil and rolls back when it returns an error or panics.
func (u *UnitOfWork) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return u.db.WithContext(ctx).Transaction(fn)
}
