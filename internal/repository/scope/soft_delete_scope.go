package scope

import (
	"fmt"

	"cascade-softdelete/pkg/softdelete/descriptor"

	"gorm.io/gorm"
)

// VisibleOnly is the visibility predicate normal queries use: a cleared
// flag for single types, level 0 for cascade types.
func VisibleOnly(t *descriptor.Type) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch t.Capability {
		case descriptor.CapabilitySingle:
			return db.Where(fmt.Sprintf("%s.%s = ?", t.Table, t.FlagColumn), false)
		case descriptor.CapabilityCascade:
			return db.Where(fmt.Sprintf("%s.%s = ?", t.Table, t.FlagColumn), 0)
		default:
			return db
		}
	}
}

// SoftDeletedOnly is the inverse of VisibleOnly. Types without a capability
// never match.
func SoftDeletedOnly(t *descriptor.Type) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch t.Capability {
		case descriptor.CapabilitySingle:
			return db.Where(fmt.Sprintf("%s.%s = ?", t.Table, t.FlagColumn), true)
		case descriptor.CapabilityCascade:
			return db.Where(fmt.Sprintf("%s.%s > ?", t.Table, t.FlagColumn), 0)
		default:
			return db.Where("1 = 0")
		}
	}
}

// AtDeleteLevel matches cascade rows stored at level. Other capabilities
// never match.
func AtDeleteLevel(t *descriptor.Type, level uint8) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if t.Capability != descriptor.CapabilityCascade {
			return db.Where("1 = 0")
		}
		return db.Where(fmt.Sprintf("%s.%s = ?", t.Table, t.FlagColumn), level)
	}
}
