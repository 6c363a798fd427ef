package bootstrap

import (
	"cascade-softdelete/internal/model"
	"cascade-softdelete/pkg/softdelete/descriptor"
)

// Entity type names of the example schema.
const (
	TypeBook             = "Book"
	TypeReview           = "Review"
	TypeCompany          = "Company"
	TypeQuote            = "Quote"
	TypeEmployee         = "Employee"
	TypeEmployeeContract = "EmployeeContract"
)

const userColumn = "user_id"

// NewExampleGraph declares the soft delete capabilities of the example
// models and the ownership edges a cascade follows.
func NewExampleGraph() (*descriptor.Graph, error) {
	return descriptor.NewGraph(
		descriptor.Type{
			Name:       TypeBook,
			Table:      model.Book{}.TableName(),
			Capability: descriptor.CapabilitySingle,
			UserColumn: userColumn,
		},
		descriptor.Type{
			Name:       TypeReview,
			Table:      model.Review{}.TableName(),
			Capability: descriptor.CapabilityNone,
		},
		descriptor.Type{
			Name:       TypeCompany,
			Table:      model.Company{}.TableName(),
			Capability: descriptor.CapabilityCascade,
			UserColumn: userColumn,
			Edges: []descriptor.Edge{
				{Name: "Quotes", Target: TypeQuote, ForeignKey: "company_id"},
			},
		},
		descriptor.Type{
			Name:       TypeQuote,
			Table:      model.Quote{}.TableName(),
			Capability: descriptor.CapabilityCascade,
			UserColumn: userColumn,
		},
		descriptor.Type{
			Name:       TypeEmployee,
			Table:      model.Employee{}.TableName(),
			Capability: descriptor.CapabilityCascade,
			UserColumn: userColumn,
			Edges: []descriptor.Edge{
				{Name: "WorksFromMe", Target: TypeEmployee, ForeignKey: "manager_id"},
				{Name: "Contract", Target: TypeEmployeeContract, ForeignKey: "employee_id"},
			},
		},
		descriptor.Type{
			Name:       TypeEmployeeContract,
			Table:      model.EmployeeContract{}.TableName(),
			Capability: descriptor.CapabilityCascade,
			UserColumn: userColumn,
		},
	)
}
