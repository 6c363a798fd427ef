// Package walker discovers the dependents of a root entity through the
// cascade edges of a descriptor.Graph.
//
// The walk is breadth-first, follows links in declaration order and asks the
// Source for each owner's dependents (ordered by key), so the same data always
// produces the same sequence. Entities are deduplicated by type and key,
// which makes cycles and diamond-shaped sharing terminate.
package walker

import (
	"context"
	"fmt"

	"cascade-softdelete/internal/entity"
	"cascade-softdelete/internal/pkg/apperror"
	"cascade-softdelete/pkg/softdelete/descriptor"
)

// Source answers adjacency queries. Implementations must return dependents
// regardless of their soft delete state.
type Source interface {
	FindDependents(ctx context.Context, link descriptor.Link, owner *entity.Record) ([]*entity.Record, error)
}

// Node is one visited entity.
type Node struct {
	Record *entity.Record
	Type   *descriptor.Type
	// Depth is the hop count from the root (root = 0).
	Depth int
	// Parents are the expanded nodes of this walk with a link to this node.
	Parents []*Node
}

type options struct {
	expand func(*Node) bool
}

type Option func(*options)

// WithExpand limits which nodes have their dependents explored. A node that
// is not expanded is still part of the result.
func WithExpand(fn func(*Node) bool) Option {
	return func(o *options) {
		o.expand = fn
	}
}

type Walker struct {
	graph  *descriptor.Graph
	source Source
}

func New(graph *descriptor.Graph, source Source) *Walker {
	return &Walker{graph: graph, source: source}
}

// Walk returns root first followed by every reachable dependent, each once.
func (w *Walker) Walk(ctx context.Context, root *entity.Record, opts ...Option) ([]*Node, error) {
	if root == nil {
		return nil, fmt.Errorf("walk: root is nil")
	}
	o := options{expand: func(*Node) bool { return true }}
	for _, opt := range opts {
		opt(&o)
	}

	rootType, err := w.cascadeType(root.Type)
	if err != nil {
		return nil, err
	}

	start := &Node{Record: root, Type: rootType}
	visited := map[string]*Node{root.Identity(): start}
	result := []*Node{start}

	queue := []*Node{start}
	for len(queue) > 0 {
		owner := queue[0]
		queue = queue[1:]

		if !o.expand(owner) {
			continue
		}

		for _, link := range w.graph.Outbound(owner.Type.Name) {
			if link.Target.Capability != descriptor.CapabilityCascade {
				return nil, apperror.NewConfiguration("link %s reaches entity type %q without cascade capability", link, link.Target.Name)
			}

			dependents, err := w.source.FindDependents(ctx, link, owner.Record)
			if err != nil {
				return nil, fmt.Errorf("walk %s of %s: %w", link, owner.Record.Identity(), err)
			}

			for _, rec := range dependents {
				if rec.Type == "" {
					rec.Type = link.Target.Name
				}
				if seen, ok := visited[rec.Identity()]; ok {
					seen.Parents = append(seen.Parents, owner)
					continue
				}
				n := &Node{
					Record:  rec,
					Type:    link.Target,
					Depth:   owner.Depth + 1,
					Parents: []*Node{owner},
				}
				visited[rec.Identity()] = n
				result = append(result, n)
				queue = append(queue, n)
			}
		}
	}

	return result, nil
}

func (w *Walker) cascadeType(name string) (*descriptor.Type, error) {
	t, err := w.graph.Type(name)
	if err != nil {
		return nil, err
	}
	if t.Capability != descriptor.CapabilityCascade {
		return nil, apperror.NewConfiguration("entity type %q cannot be cascade soft deleted (capability %s)", name, t.Capability)
	}
	return t, nil
}
