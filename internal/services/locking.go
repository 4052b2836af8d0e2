// internal/services/locking.go
package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate takes a row lock so a guard check and the write that depends
// on it run against the same row version. Without the lock, two concurrent
// transactions under read committed can both pass the check before either
// commits. sqlite has no FOR UPDATE syntax and serializes writers anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
