package service_test

import (
	"context"
	"iter"
	"testing"

	"cascade-softdelete/internal/bootstrap"
	"cascade-softdelete/internal/entity"
	"cascade-softdelete/internal/pkg/logger"
	"cascade-softdelete/internal/repository/specification"
	"cascade-softdelete/internal/repository/unitofwork"
	"cascade-softdelete/internal/service"
	"cascade-softdelete/internal/testutil"
	"cascade-softdelete/pkg/events"
	"cascade-softdelete/pkg/softdelete/descriptor"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return p.err
}

type fixture struct {
	db        *gorm.DB
	graph     *descriptor.Graph
	factory   unitofwork.RepositoryFactory
	publisher *recordingPublisher
}

func newFixture(t *testing.T, extra ...interface{}) *fixture {
	t.Helper()
	graph, err := bootstrap.NewExampleGraph()
	require.NoError(t, err)
	return newFixtureWithGraph(t, graph, extra...)
}

func newFixtureWithGraph(t *testing.T, graph *descriptor.Graph, extra ...interface{}) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t, extra...)
	return &fixture{
		db:        db,
		graph:     graph,
		factory:   unitofwork.NewRepositoryFactory(db),
		publisher: &recordingPublisher{},
	}
}

func (f *fixture) single(cfg service.SoftDeleteConfig) service.ISingleSoftDeleteService {
	return service.NewSingleSoftDeleteService(f.factory, f.graph, cfg, f.publisher, logger.NewNopLogger())
}

func (f *fixture) cascade(cfg service.SoftDeleteConfig) service.ICascadeSoftDeleteService {
	return service.NewCascadeSoftDeleteService(f.factory, f.graph, cfg, f.publisher, logger.NewNopLogger())
}

func (f *fixture) create(t *testing.T, value interface{}) {
	t.Helper()
	require.NoError(t, f.db.Create(value).Error)
}

func (f *fixture) level(t *testing.T, table string, id uuid.UUID) uint8 {
	t.Helper()
	var lvl uint8
	require.NoError(t, f.db.Table(table).Select("soft_delete_level").Where("id = ?", id).Row().Scan(&lvl))
	return lvl
}

// counts returns the visible and the unfiltered row count of entityType.
func (f *fixture) counts(t *testing.T, entityType string) (visible, all int64) {
	t.Helper()
	typ, err := f.graph.Type(entityType)
	require.NoError(t, err)

	repo := f.factory.NewUnitOfWork(context.Background()).SoftDeleteRepository()
	visible, err = repo.Count(context.Background(), typ, specification.Visible{Type: typ})
	require.NoError(t, err)
	all, err = repo.Count(context.Background(), typ)
	require.NoError(t, err)
	return visible, all
}

func collect(t *testing.T, seq iter.Seq2[*entity.Record, error]) []*entity.Record {
	t.Helper()
	var out []*entity.Record
	for rec, err := range seq {
		require.NoError(t, err)
		out = append(out, rec)
	}
	return out
}
