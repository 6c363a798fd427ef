package scope

import (
	"fmt"

	"gorm.io/gorm"
)

// OrderByKeyAsc keeps dependent lists in a stable order so walks are
// reproducible.
func OrderByKeyAsc(column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(fmt.Sprintf("%s ASC", column))
	}
}
