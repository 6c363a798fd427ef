package model

import "github.com/google/uuid"

// DeleteStateRow is the projection every soft delete query scans into,
// whatever table it reads. Columns are aliased by the repository.
type DeleteStateRow struct {
	RecordKey       uuid.UUID `gorm:"column:record_key"`
	SoftDeleted     bool      `gorm:"column:soft_deleted"`
	SoftDeleteLevel uint8     `gorm:"column:soft_delete_level"`
}

// ExampleModels lists the example schema in migration order.
func ExampleModels() []interface{} {
	return []interface{}{
		&Book{},
		&Review{},
		&Company{},
		&Quote{},
		&Employee{},
		&EmployeeContract{},
	}
}
