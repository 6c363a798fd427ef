// Package descriptor is the static metadata of the soft-delete graph: which
// entity types can be soft deleted, how, and which ownership edges a cascade
// follows. A Graph is built and validated once at startup; afterwards every
// capability check is a map lookup.
package descriptor

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm/schema"

	"cascade-softdelete/internal/pkg/apperror"
)

// Capability says how an entity type is soft deleted.
type Capability int

const (
	CapabilityNone Capability = iota
	CapabilitySingle
	CapabilityCascade
)

func (c Capability) String() string {
	switch c {
	case CapabilitySingle:
		return "single"
	case CapabilityCascade:
		return "cascade"
	default:
		return "none"
	}
}

const (
	DefaultKeyColumn   = "id"
	DefaultFlagColumn  = "soft_deleted"
	DefaultLevelColumn = "soft_delete_level"
)

// Edge is a cascade-relevant relationship from the declaring (owner) type to
// Target. ForeignKey is the column on the Target table referencing the owner.
type Edge struct {
	Name       string `validate:"required"`
	Target     string `validate:"required"`
	ForeignKey string `validate:"required"`
}

// Type describes one entity type.
type Type struct {
	Name       string `validate:"required"`
	Table      string `validate:"required"`
	KeyColumn  string
	Capability Capability `validate:"min=0,max=2"`
	// FlagColumn holds the bool flag (single) or the level (cascade).
	FlagColumn string
	// UserColumn, when set, is compared against the user filter value.
	UserColumn string
	Edges      []Edge `validate:"dive"`
}

// Link is an Edge resolved against the graph.
type Link struct {
	Name       string
	Owner      *Type
	Target     *Type
	ForeignKey string
}

func (l Link) String() string {
	return fmt.Sprintf("%s.%s -> %s", l.Owner.Name, l.Name, l.Target.Name)
}

// Graph is the resolved capability and relationship table.
type Graph struct {
	types    map[string]*Type
	byTable  map[string]*Type
	order    []*Type
	outbound map[string][]Link
	inbound  map[string][]Link
}

var validate = validator.New()

// NewGraph validates the declarations and resolves every edge. Any
// inconsistency is reported as a configuration error.
func NewGraph(types ...Type) (*Graph, error) {
	g := &Graph{
		types:    make(map[string]*Type, len(types)),
		byTable:  make(map[string]*Type, len(types)),
		outbound: make(map[string][]Link),
		inbound:  make(map[string][]Link),
	}

	for i := range types {
		t := types[i]
		if err := validate.Struct(t); err != nil {
			return nil, apperror.NewConfiguration("invalid entity type %q: %v", t.Name, err).WithCause(err)
		}
		if t.KeyColumn == "" {
			t.KeyColumn = DefaultKeyColumn
		}
		if t.FlagColumn == "" {
			switch t.Capability {
			case CapabilitySingle:
				t.FlagColumn = DefaultFlagColumn
			case CapabilityCascade:
				t.FlagColumn = DefaultLevelColumn
			}
		}
		if _, dup := g.types[t.Name]; dup {
			return nil, apperror.NewConfiguration("entity type %q declared twice", t.Name)
		}
		if _, dup := g.byTable[t.Table]; dup {
			return nil, apperror.NewConfiguration("table %q mapped by more than one entity type", t.Table)
		}
		g.types[t.Name] = &t
		g.byTable[t.Table] = &t
		g.order = append(g.order, &t)
	}

	for _, owner := range g.order {
		if len(owner.Edges) > 0 && owner.Capability != CapabilityCascade {
			return nil, apperror.NewConfiguration("entity type %q declares cascade edges but has capability %s", owner.Name, owner.Capability)
		}
		for _, e := range owner.Edges {
			target, ok := g.types[e.Target]
			if !ok {
				return nil, apperror.NewConfiguration("edge %s.%s references undeclared entity type %q", owner.Name, e.Name, e.Target)
			}
			if target.Capability != CapabilityCascade {
				return nil, apperror.NewConfiguration("edge %s.%s targets %q which has capability %s", owner.Name, e.Name, e.Target, target.Capability)
			}
			link := Link{Name: e.Name, Owner: owner, Target: target, ForeignKey: e.ForeignKey}
			g.outbound[owner.Name] = append(g.outbound[owner.Name], link)
			g.inbound[target.Name] = append(g.inbound[target.Name], link)
		}
	}

	return g, nil
}

// Type returns the declaration of name or a configuration error.
func (g *Graph) Type(name string) (*Type, error) {
	t, ok := g.types[name]
	if !ok {
		return nil, apperror.NewConfiguration("entity type %q has no declared soft delete capability", name)
	}
	return t, nil
}

// Require returns name's declaration only if it has the given capability.
func (g *Graph) Require(name string, c Capability) (*Type, error) {
	t, err := g.Type(name)
	if err != nil {
		return nil, err
	}
	if t.Capability != c {
		return nil, apperror.NewConfiguration("entity type %q has capability %s, %s required", name, t.Capability, c)
	}
	return t, nil
}

// TypeForModel maps a gorm model onto its declaration through its table name.
func (g *Graph) TypeForModel(m schema.Tabler) (*Type, error) {
	t, ok := g.byTable[m.TableName()]
	if !ok {
		return nil, apperror.NewConfiguration("table %q is not part of the soft delete graph", m.TableName())
	}
	return t, nil
}

// Outbound lists the links owned by name in declaration order.
func (g *Graph) Outbound(name string) []Link {
	return g.outbound[name]
}

// Inbound lists the links that target name.
func (g *Graph) Inbound(name string) []Link {
	return g.inbound[name]
}

// Types lists every declaration in registration order.
func (g *Graph) Types() []*Type {
	return append([]*Type(nil), g.order...)
}
