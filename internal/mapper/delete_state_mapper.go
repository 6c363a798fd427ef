package mapper

import (
	"cascade-softdelete/internal/entity"
	"cascade-softdelete/internal/model"
	"cascade-softdelete/pkg/softdelete/descriptor"
)

type DeleteStateMapper struct{}

func NewDeleteStateMapper() *DeleteStateMapper {
	return &DeleteStateMapper{}
}

// ToEntity keeps only the state field the type's capability owns.
func (m *DeleteStateMapper) ToEntity(t *descriptor.Type, row *model.DeleteStateRow) *entity.Record {
	if row == nil {
		return nil
	}
	rec := &entity.Record{
		Type: t.Name,
		Key:  row.RecordKey,
	}
	switch t.Capability {
	case descriptor.CapabilitySingle:
		rec.SoftDeleted = row.SoftDeleted
	case descriptor.CapabilityCascade:
		rec.SoftDeleteLevel = row.SoftDeleteLevel
	}
	return rec
}

func (m *DeleteStateMapper) ToEntities(t *descriptor.Type, rows []*model.DeleteStateRow) []*entity.Record {
	entities := make([]*entity.Record, len(rows))
	for i, r := range rows {
		entities[i] = m.ToEntity(t, r)
	}
	return entities
}

// StateValue is the column value that stores rec's delete state.
func (m *DeleteStateMapper) StateValue(t *descriptor.Type, rec *entity.Record) interface{} {
	if t.Capability == descriptor.CapabilitySingle {
		return rec.SoftDeleted
	}
	return rec.SoftDeleteLevel
}
