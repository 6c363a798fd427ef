package specification

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByKey filters by the primary key column
type ByKey struct {
	Column string
	Key    uuid.UUID
}

func (s ByKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(fmt.Sprintf("%s = ?", s.Column), s.Key)
}
