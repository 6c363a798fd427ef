package specification

import (
	"fmt"

	"cascade-softdelete/internal/repository/scope"
	"cascade-softdelete/pkg/softdelete/descriptor"

	"gorm.io/gorm"
)

// Visible excludes soft deleted rows of Type. Queries without it bypass the
// visibility filter.
type Visible struct {
	Type *descriptor.Type
}

func (s Visible) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.VisibleOnly(s.Type))
}

// SoftDeletedOnly keeps only the soft deleted rows of Type.
type SoftDeletedOnly struct {
	Type *descriptor.Type
}

func (s SoftDeletedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.SoftDeletedOnly(s.Type))
}

// UserOwnedBy scopes rows to one user. The value is opaque here; it is
// compared as is.
type UserOwnedBy struct {
	Column string
	Value  interface{}
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(fmt.Sprintf("%s = ?", s.Column), s.Value)
}

// AtDeleteLevel keeps the cascade rows of Type stored at exactly Level.
type AtDeleteLevel struct {
	Type  *descriptor.Type
	Level uint8
}

func (s AtDeleteLevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.AtDeleteLevel(s.Type, s.Level))
}
