package service

import (
	"context"
	"iter"

	"cascade-softdelete/internal/entity"
	"cascade-softdelete/internal/pkg/apperror"
	"cascade-softdelete/internal/pkg/logger"
	"cascade-softdelete/internal/repository/specification"
	"cascade-softdelete/internal/repository/unitofwork"
	"cascade-softdelete/pkg/events"
	"cascade-softdelete/pkg/softdelete/descriptor"
	"cascade-softdelete/pkg/softdelete/status"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const singleModule = "SingleSoftDelete"

// ISingleSoftDeleteService flips the soft delete flag of exactly one entity.
// The error return is reserved for configuration errors; every other outcome
// is reported in the status.
type ISingleSoftDeleteService interface {
	SetSoftDelete(ctx context.Context, rec *entity.Record) (*status.Status, error)
	SetSoftDeleteByKey(ctx context.Context, entityType string, key uuid.UUID) (*status.Status, error)
	ResetSoftDelete(ctx context.Context, rec *entity.Record) (*status.Status, error)
	ResetSoftDeleteByKey(ctx context.Context, entityType string, key uuid.UUID) (*status.Status, error)
	GetSoftDeletedEntries(ctx context.Context, entityType string) (iter.Seq2[*entity.Record, error], error)
}

type singleSoftDeleteService struct {
	uowFactory       unitofwork.RepositoryFactory
	graph            *descriptor.Graph
	config           SoftDeleteConfig
	publisherService IPublisherService
	logger           logger.ILogger
}

// NewSingleSoftDeleteService builds the service. publisherService may be nil.
func NewSingleSoftDeleteService(
	uowFactory unitofwork.RepositoryFactory,
	graph *descriptor.Graph,
	config SoftDeleteConfig,
	publisherService IPublisherService,
	logger logger.ILogger,
) ISingleSoftDeleteService {
	return &singleSoftDeleteService{
		uowFactory:       uowFactory,
		graph:            graph,
		config:           config,
		publisherService: publisherService,
		logger:           logger,
	}
}

func (s *singleSoftDeleteService) SetSoftDelete(ctx context.Context, rec *entity.Record) (*status.Status, error) {
	if rec == nil {
		return nilRecord(), nil
	}
	return s.changeFlag(ctx, rec.Type, rec.Key, true)
}

func (s *singleSoftDeleteService) SetSoftDeleteByKey(ctx context.Context, entityType string, key uuid.UUID) (*status.Status, error) {
	return s.changeFlag(ctx, entityType, key, true)
}

func (s *singleSoftDeleteService) ResetSoftDelete(ctx context.Context, rec *entity.Record) (*status.Status, error) {
	if rec == nil {
		return nilRecord(), nil
	}
	return s.changeFlag(ctx, rec.Type, rec.Key, false)
}

func (s *singleSoftDeleteService) ResetSoftDeleteByKey(ctx context.Context, entityType string, key uuid.UUID) (*status.Status, error) {
	return s.changeFlag(ctx, entityType, key, false)
}

// changeFlag reloads the entity inside the transaction so a stale reference
// can not overwrite a newer state.
func (s *singleSoftDeleteService) changeFlag(ctx context.Context, entityType string, key uuid.UUID, softDeleted bool) (*status.Status, error) {
	ctx, span := startSpan(ctx, "SingleSoftDelete.changeFlag", entityType, key)
	defer span.End()
	span.SetAttributes(attribute.Bool("softdelete.target", softDeleted))

	t, err := s.graph.Require(entityType, descriptor.CapabilitySingle)
	if err != nil {
		markSpanError(span, err)
		return nil, err
	}

	uow := newUnitOfWork(ctx, s.uowFactory, s.config)
	if err := uow.Begin(ctx); err != nil {
		return s.failed(span, apperror.NewDatabase(err)), nil
	}
	defer rollbackIfActive(uow)

	repo := uow.SoftDeleteRepository()

	rec, err := repo.FindByKey(ctx, t, key)
	if err != nil {
		return s.failed(span, apperror.NewDatabase(err)), nil
	}
	if rec == nil {
		s.logger.Warn(singleModule, "Entry not found", map[string]interface{}{
			"entity_type": entityType,
			"entity_id":   key.String(),
		})
		return notFound(s.config, entityType, key), nil
	}

	if rec.SoftDeleted == softDeleted {
		return status.Success(0), nil
	}

	rec.SoftDeleted = softDeleted
	if err := repo.UpdateDeleteState(ctx, t, rec); err != nil {
		return s.failed(span, apperror.NewCommitFailure(err)), nil
	}
	if err := uow.Commit(); err != nil {
		return s.failed(span, apperror.NewCommitFailure(err)), nil
	}

	eventType := events.SoftDeleteSet
	if !softDeleted {
		eventType = events.SoftDeleteReset
	}
	s.logger.Info(singleModule, "Soft delete state changed", map[string]interface{}{
		"entity_type":  entityType,
		"entity_id":    key.String(),
		"soft_deleted": softDeleted,
	})
	publishChange(ctx, s.publisherService, s.logger, singleModule, eventType, entityType, key, 1)

	return status.Success(1), nil
}

func (s *singleSoftDeleteService) failed(span trace.Span, appErr *apperror.AppError) *status.Status {
	return failure(span, s.logger, singleModule, appErr)
}

func (s *singleSoftDeleteService) GetSoftDeletedEntries(ctx context.Context, entityType string) (iter.Seq2[*entity.Record, error], error) {
	t, err := s.graph.Require(entityType, descriptor.CapabilitySingle)
	if err != nil {
		return nil, err
	}
	return softDeletedEntries(ctx, s.uowFactory, s.config, t, specification.SoftDeletedOnly{Type: t}), nil
}
