package implementation

import (
	"context"
	"errors"
	"fmt"

	"cascade-softdelete/internal/entity"
	"cascade-softdelete/internal/mapper"
	"cascade-softdelete/internal/model"
	"cascade-softdelete/internal/repository/contract"
	"cascade-softdelete/internal/repository/scope"
	"cascade-softdelete/internal/repository/specification"
	"cascade-softdelete/pkg/softdelete/descriptor"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SoftDeleteRepositoryImpl struct {
	db         *gorm.DB
	mapper     *mapper.DeleteStateMapper
	userFilter interface{}
}

// NewSoftDeleteRepository scopes every query on types with a UserColumn to
// userFilter when it is not nil.
func NewSoftDeleteRepository(db *gorm.DB, userFilter interface{}) contract.SoftDeleteRepository {
	return &SoftDeleteRepositoryImpl{
		db:         db,
		mapper:     mapper.NewDeleteStateMapper(),
		userFilter: userFilter,
	}
}

func (r *SoftDeleteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func column(t *descriptor.Type, name string) string {
	return fmt.Sprintf("%s.%s", t.Table, name)
}

func (r *SoftDeleteRepositoryImpl) selectColumns(t *descriptor.Type) []string {
	cols := []string{fmt.Sprintf("%s AS record_key", column(t, t.KeyColumn))}
	switch t.Capability {
	case descriptor.CapabilitySingle:
		cols = append(cols, fmt.Sprintf("%s AS soft_deleted", column(t, t.FlagColumn)))
	case descriptor.CapabilityCascade:
		cols = append(cols, fmt.Sprintf("%s AS soft_delete_level", column(t, t.FlagColumn)))
	}
	return cols
}

// table starts a query on t with the user scope applied.
func (r *SoftDeleteRepositoryImpl) table(ctx context.Context, t *descriptor.Type) *gorm.DB {
	q := r.db.WithContext(ctx).Table(t.Table)
	if r.userFilter != nil && t.UserColumn != "" {
		q = specification.UserOwnedBy{Column: column(t, t.UserColumn), Value: r.userFilter}.Apply(q)
	}
	return q
}

func (r *SoftDeleteRepositoryImpl) query(ctx context.Context, t *descriptor.Type, specs ...specification.Specification) *gorm.DB {
	q := r.table(ctx, t).Select(r.selectColumns(t))
	return r.applySpecifications(q, specs...)
}

func (r *SoftDeleteRepositoryImpl) find(q *gorm.DB, t *descriptor.Type) ([]*entity.Record, error) {
	var rows []*model.DeleteStateRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(t, rows), nil
}

func (r *SoftDeleteRepositoryImpl) FindByKey(ctx context.Context, t *descriptor.Type, key uuid.UUID, specs ...specification.Specification) (*entity.Record, error) {
	var row model.DeleteStateRow
	specs = append([]specification.Specification{specification.ByKey{Column: column(t, t.KeyColumn), Key: key}}, specs...)
	if err := r.query(ctx, t, specs...).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(t, &row), nil
}

func (r *SoftDeleteRepositoryImpl) Each(ctx context.Context, t *descriptor.Type, fn func(*entity.Record) bool, specs ...specification.Specification) error {
	rows, err := r.query(ctx, t, specs...).Scopes(scope.OrderByKeyAsc(column(t, t.KeyColumn))).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var row model.DeleteStateRow
		if err := r.db.ScanRows(rows, &row); err != nil {
			return err
		}
		if !fn(r.mapper.ToEntity(t, &row)) {
			return nil
		}
	}
	return rows.Err()
}

func (r *SoftDeleteRepositoryImpl) Count(ctx context.Context, t *descriptor.Type, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.table(ctx, t), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindDependents returns link.Target rows referencing owner, soft deleted
// or not, ordered by key.
func (r *SoftDeleteRepositoryImpl) FindDependents(ctx context.Context, link descriptor.Link, owner *entity.Record) ([]*entity.Record, error) {
	t := link.Target
	q := r.query(ctx, t).
		Where(fmt.Sprintf("%s = ?", column(t, link.ForeignKey)), owner.Key).
		Scopes(scope.OrderByKeyAsc(column(t, t.KeyColumn)))
	return r.find(q, t)
}

// FindOwners returns the link.Owner rows dependent references through
// link.ForeignKey, soft deleted or not.
func (r *SoftDeleteRepositoryImpl) FindOwners(ctx context.Context, link descriptor.Link, dependent *entity.Record) ([]*entity.Record, error) {
	owner, dep := link.Owner, link.Target
	sub := r.db.WithContext(ctx).
		Table(dep.Table).
		Select(link.ForeignKey).
		Where(fmt.Sprintf("%s = ?", dep.KeyColumn), dependent.Key)

	q := r.query(ctx, owner).
		Where(fmt.Sprintf("%s IN (?)", column(owner, owner.KeyColumn)), sub).
		Scopes(scope.OrderByKeyAsc(column(owner, owner.KeyColumn)))
	return r.find(q, owner)
}

func (r *SoftDeleteRepositoryImpl) UpdateDeleteState(ctx context.Context, t *descriptor.Type, rec *entity.Record) error {
	if t.Capability == descriptor.CapabilityNone {
		return fmt.Errorf("entity type %q has no delete state", t.Name)
	}
	res := r.table(ctx, t).
		Where(fmt.Sprintf("%s = ?", column(t, t.KeyColumn)), rec.Key).
		Update(t.FlagColumn, r.mapper.StateValue(t, rec))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update %s: %w", rec.Identity(), gorm.ErrRecordNotFound)
	}
	return nil
}
