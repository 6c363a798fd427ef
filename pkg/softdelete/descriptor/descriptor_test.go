package descriptor

import (
	"testing"

	"cascade-softdelete/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quoteModel struct{}

func (quoteModel) TableName() string { return "quotes" }

func companyGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraph(
		Type{
			Name:       "Company",
			Table:      "companies",
			Capability: CapabilityCascade,
			Edges:      []Edge{{Name: "Quotes", Target: "Quote", ForeignKey: "company_id"}},
		},
		Type{Name: "Quote", Table: "quotes", Capability: CapabilityCascade},
		Type{Name: "Book", Table: "books", Capability: CapabilitySingle, UserColumn: "user_id"},
	)
	require.NoError(t, err)
	return g
}

func TestNewGraph(t *testing.T) {
	g := companyGraph(t)

	t.Run("defaults columns per capability", func(t *testing.T) {
		company, err := g.Type("Company")
		require.NoError(t, err)
		assert.Equal(t, DefaultKeyColumn, company.KeyColumn)
		assert.Equal(t, DefaultLevelColumn, company.FlagColumn)

		book, err := g.Type("Book")
		require.NoError(t, err)
		assert.Equal(t, DefaultFlagColumn, book.FlagColumn)
		assert.Equal(t, "user_id", book.UserColumn)
	})

	t.Run("resolves links both ways", func(t *testing.T) {
		out := g.Outbound("Company")
		require.Len(t, out, 1)
		assert.Equal(t, "Quote", out[0].Target.Name)
		assert.Equal(t, "company_id", out[0].ForeignKey)
		assert.Equal(t, "Company.Quotes -> Quote", out[0].String())

		in := g.Inbound("Quote")
		require.Len(t, in, 1)
		assert.Equal(t, "Company", in[0].Owner.Name)
		assert.Empty(t, g.Inbound("Company"))
	})

	t.Run("lookups", func(t *testing.T) {
		q, err := g.TypeForModel(quoteModel{})
		require.NoError(t, err)
		assert.Equal(t, "Quote", q.Name)

		_, err = g.Type("Unknown")
		assert.True(t, apperror.IsConfiguration(err))

		_, err = g.Require("Book", CapabilityCascade)
		assert.True(t, apperror.IsConfiguration(err))

		book, err := g.Require("Book", CapabilitySingle)
		require.NoError(t, err)
		assert.Equal(t, "books", book.Table)

		assert.Len(t, g.Types(), 3)
	})
}

func TestNewGraphConfigurationErrors(t *testing.T) {
	tests := []struct {
		name  string
		types []Type
	}{
		{
			name: "undeclared edge target",
			types: []Type{
				{Name: "Company", Table: "companies", Capability: CapabilityCascade,
					Edges: []Edge{{Name: "Quotes", Target: "Quote", ForeignKey: "company_id"}}},
			},
		},
		{
			name: "edge target without cascade capability",
			types: []Type{
				{Name: "Company", Table: "companies", Capability: CapabilityCascade,
					Edges: []Edge{{Name: "Books", Target: "Book", ForeignKey: "company_id"}}},
				{Name: "Book", Table: "books", Capability: CapabilitySingle},
			},
		},
		{
			name: "edges on a single type",
			types: []Type{
				{Name: "Book", Table: "books", Capability: CapabilitySingle,
					Edges: []Edge{{Name: "Self", Target: "Book", ForeignKey: "book_id"}}},
			},
		},
		{
			name: "duplicate name",
			types: []Type{
				{Name: "Book", Table: "books", Capability: CapabilitySingle},
				{Name: "Book", Table: "books2", Capability: CapabilitySingle},
			},
		},
		{
			name: "duplicate table",
			types: []Type{
				{Name: "Book", Table: "books", Capability: CapabilitySingle},
				{Name: "Novel", Table: "books", Capability: CapabilitySingle},
			},
		},
		{
			name:  "missing table",
			types: []Type{{Name: "Book", Capability: CapabilitySingle}},
		},
		{
			name: "edge without foreign key",
			types: []Type{
				{Name: "Company", Table: "companies", Capability: CapabilityCascade,
					Edges: []Edge{{Name: "Quotes", Target: "Company"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(tt.types...)
			assert.Nil(t, g)
			assert.True(t, apperror.IsConfiguration(err), "got %v", err)
		})
	}
}
