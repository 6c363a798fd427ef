package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Record is the delete state of one persisted entity, independent of its
// concrete model. Single-capable types use SoftDeleted, cascade-capable
// types use SoftDeleteLevel (0 = visible).
type Record struct {
	Type            string
	Key             uuid.UUID
	SoftDeleted     bool
	SoftDeleteLevel uint8
}

// Identity is the visited-set key of the record.
func (r *Record) Identity() string {
	return fmt.Sprintf("%s#%s", r.Type, r.Key)
}

// IsSoftDeleted is true for a flagged single entity or a cascade entity at
// any level above zero.
func (r *Record) IsSoftDeleted() bool {
	return r.SoftDeleted || r.SoftDeleteLevel > 0
}
