// Package level computes the cascade soft delete level of every node of a
// walk, and decides which nodes a reset may clear.
//
// A level records how many hops from the delete root produced an entity's
// soft deleted state (root = 1). A reset started from the same root
// recomputes the expected level and only clears entities whose stored level
// still matches it, so sub-groups that were soft deleted by an earlier,
// independent operation keep their state.
package level

import (
	"context"
	"fmt"
	"math"

	"cascade-softdelete/internal/entity"
	"cascade-softdelete/pkg/softdelete/descriptor"
	"cascade-softdelete/pkg/softdelete/walker"
)

// Root is the level given to the entity a cascade soft delete starts from.
const Root uint8 = 1

// OwnerSource answers reverse adjacency queries: the current owners of a
// dependent through one link, regardless of their soft delete state.
type OwnerSource interface {
	FindOwners(ctx context.Context, link descriptor.Link, dependent *entity.Record) ([]*entity.Record, error)
}

// Expected is the level an entity depth hops below a root at rootLevel
// carries. Levels saturate at 255.
func Expected(rootLevel uint8, depth int) uint8 {
	l := int(rootLevel) + depth
	if l > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(l)
}

type Tracker struct {
	graph *descriptor.Graph
}

func NewTracker(graph *descriptor.Graph) *Tracker {
	return &Tracker{graph: graph}
}

// ComputeLevels assigns the delete level of every node. nodes must be in
// walk order (root first). A node reached along paths of different lengths
// gets the shallower level.
func (t *Tracker) ComputeLevels(nodes []*walker.Node) map[*walker.Node]uint8 {
	levels := make(map[*walker.Node]uint8, len(nodes))
	if len(nodes) == 0 {
		return levels
	}
	levels[nodes[0]] = Root

	for _, n := range nodes[1:] {
		best := -1
		for _, p := range n.Parents {
			pl, ok := levels[p]
			if !ok {
				continue
			}
			cand := int(Expected(pl, 1))
			if best < 0 || cand < best {
				best = cand
			}
		}
		if best < 0 {
			// only reachable through nodes outside this walk
			best = int(Expected(Root, n.Depth))
		}
		levels[n] = uint8(best)
	}
	return levels
}

// HeldError reports that the reset root is itself held by an owner that is
// still soft deleted, so clearing it would resurrect part of another delete.
type HeldError struct {
	Owner *entity.Record
}

func (e *HeldError) Error() string {
	return fmt.Sprintf("held by soft deleted owner %s", e.Owner.Identity())
}

// ComputeResets returns the new level of every node: 0 when this reset is
// responsible for clearing it, the stored level otherwise.
//
// A node is cleared only when its stored level equals Expected(rootLevel,
// depth) and none of its owners outside the cleared set is still soft
// deleted. Dropping a node can expose its own dependents, so the owner check
// runs to a fixed point. The root goes through the same check; when it is
// held, nothing is cleared and a *HeldError is returned.
func (t *Tracker) ComputeResets(ctx context.Context, nodes []*walker.Node, rootLevel uint8, owners OwnerSource) (map[*walker.Node]uint8, error) {
	result := make(map[*walker.Node]uint8, len(nodes))
	if len(nodes) == 0 {
		return result, nil
	}
	root := nodes[0]

	clearing := make(map[string]*walker.Node, len(nodes))
	for i, n := range nodes {
		result[n] = n.Record.SoftDeleteLevel
		if i == 0 || n.Record.SoftDeleteLevel == Expected(rootLevel, n.Depth) {
			clearing[n.Record.Identity()] = n
		}
	}

	ownersOf := make(map[*walker.Node][]*entity.Record, len(clearing))
	for _, n := range nodes {
		if _, ok := clearing[n.Record.Identity()]; !ok {
			continue
		}
		for _, link := range t.graph.Inbound(n.Type.Name) {
			found, err := owners.FindOwners(ctx, link, n.Record)
			if err != nil {
				return nil, fmt.Errorf("owners of %s via %s: %w", n.Record.Identity(), link, err)
			}
			for _, o := range found {
				if o.Type == "" {
					o.Type = link.Owner.Name
				}
			}
			ownersOf[n] = append(ownersOf[n], found...)
		}
	}

	for changed := true; changed; {
		changed = false
		for _, n := range nodes {
			id := n.Record.Identity()
			if _, ok := clearing[id]; !ok {
				continue
			}
			if holder := heldByOtherOwner(ownersOf[n], clearing); holder != nil {
				if n == root {
					return result, &HeldError{Owner: holder}
				}
				delete(clearing, id)
				changed = true
			}
		}
	}

	for _, n := range clearing {
		result[n] = 0
	}
	return result, nil
}

// heldByOtherOwner returns a soft deleted owner outside clearing, if any.
func heldByOtherOwner(owners []*entity.Record, clearing map[string]*walker.Node) *entity.Record {
	for _, o := range owners {
		if !o.IsSoftDeleted() {
			continue
		}
		if _, ok := clearing[o.Identity()]; !ok {
			return o
		}
	}
	return nil
}
