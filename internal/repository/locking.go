package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// updateLocked loads the row with primary key id into dest under a
// SELECT ... FOR UPDATE lock, applies mutate and writes back the listed
// columns, all in one transaction. Any error from mutate rolls the
// transaction back and is returned unchanged.
func updateLocked(ctx context.Context, db *gorm.DB, dest interface{}, id uint, mutate func() error, columns ...string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(dest, id).Error; err != nil {
			return translate(err)
		}

		if err := mutate(); err != nil {
			return err
		}

		return tx.Model(dest).Select(columns).Updates(dest).Error
	})
}
