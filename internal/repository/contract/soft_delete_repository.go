package contract

import (
	"context"

	"cascade-softdelete/internal/entity"
	"cascade-softdelete/internal/repository/specification"
	"cascade-softdelete/pkg/softdelete/descriptor"

	"github.com/google/uuid"
)

// SoftDeleteRepository reads and writes the delete state of any entity type
// declared in the graph. No method applies the visibility filter on its own;
// callers add specification.Visible when they want it.
type SoftDeleteRepository interface {
	FindByKey(ctx context.Context, t *descriptor.Type, key uuid.UUID, specs ...specification.Specification) (*entity.Record, error)
	// Each streams rows to fn until fn returns false.
	Each(ctx context.Context, t *descriptor.Type, fn func(*entity.Record) bool, specs ...specification.Specification) error
	Count(ctx context.Context, t *descriptor.Type, specs ...specification.Specification) (int64, error)

	FindDependents(ctx context.Context, link descriptor.Link, owner *entity.Record) ([]*entity.Record, error)
	FindOwners(ctx context.Context, link descriptor.Link, dependent *entity.Record) ([]*entity.Record, error)

	UpdateDeleteState(ctx context.Context, t *descriptor.Type, rec *entity.Record) error
}
