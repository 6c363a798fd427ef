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
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("cascade-softdelete/service")

func startSpan(ctx context.Context, name, entityType string, key uuid.UUID) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("softdelete.entity_type", entityType),
		attribute.String("softdelete.key", key.String()),
	))
}

func markSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// failure logs appErr, marks the span and wraps appErr in an invalid status.
func failure(span trace.Span, log logger.ILogger, module string, appErr *apperror.AppError) *status.Status {
	markSpanError(span, appErr)
	log.Error(module, appErr.Message, map[string]interface{}{
		"code":  appErr.Code,
		"error": appErr.Error(),
	})
	return status.Failure(appErr)
}

func rollbackIfActive(uow unitofwork.UnitOfWork) {
	if uow.InTransaction() {
		_ = uow.Rollback()
	}
}

func newUnitOfWork(ctx context.Context, factory unitofwork.RepositoryFactory, cfg SoftDeleteConfig) unitofwork.UnitOfWork {
	return factory.NewUnitOfWork(ctx, unitofwork.WithUserFilter(cfg.UserFilterValue))
}

// notFound applies the NotFoundIsNotAnError policy.
func notFound(cfg SoftDeleteConfig, entityType string, key uuid.UUID) *status.Status {
	if cfg.NotFoundIsNotAnError {
		return status.Success(0)
	}
	return status.Failure(apperror.NewNotFound(entityType, key))
}

func nilRecord() *status.Status {
	return status.Failure(apperror.NewValidation("no entry was given to soft delete"))
}

// publishChange emits the event of a committed change. The change is already
// durable, so a failed publish is only logged.
func publishChange(ctx context.Context, publisher IPublisherService, log logger.ILogger, module, eventType, entityType string, key uuid.UUID, affected int) {
	if publisher == nil || affected == 0 {
		return
	}
	event := events.NewSoftDeleteEvent(eventType, entityType, key, affected)
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn(module, "Failed to publish soft delete event", map[string]interface{}{
			"event_type":  eventType,
			"entity_type": entityType,
			"entity_id":   key.String(),
			"error":       err.Error(),
		})
	}
}

// softDeletedEntries lazily lists the soft deleted rows of t. Every range over
// the sequence runs the query again. The rows stay open while the caller's
// loop body runs.
func softDeletedEntries(ctx context.Context, factory unitofwork.RepositoryFactory, cfg SoftDeleteConfig, t *descriptor.Type, specs ...specification.Specification) iter.Seq2[*entity.Record, error] {
	return func(yield func(*entity.Record, error) bool) {
		uow := newUnitOfWork(ctx, factory, cfg)
		stopped := false
		err := uow.SoftDeleteRepository().Each(ctx, t, func(rec *entity.Record) bool {
			if !yield(rec, nil) {
				stopped = true
				return false
			}
			return true
		}, specs...)
		if err != nil && !stopped {
			yield(nil, apperror.NewDatabase(err))
		}
	}
}
