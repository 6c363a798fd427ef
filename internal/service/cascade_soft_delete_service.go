package service

import (
	"context"
	"errors"
	"iter"

	"cascade-softdelete/internal/entity"
	"cascade-softdelete/internal/pkg/apperror"
	"cascade-softdelete/internal/pkg/logger"
	"cascade-softdelete/internal/repository/contract"
	"cascade-softdelete/internal/repository/specification"
	"cascade-softdelete/internal/repository/unitofwork"
	"cascade-softdelete/pkg/events"
	"cascade-softdelete/pkg/softdelete/descriptor"
	"cascade-softdelete/pkg/softdelete/level"
	"cascade-softdelete/pkg/softdelete/status"
	"cascade-softdelete/pkg/softdelete/walker"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const cascadeModule = "CascadeSoftDelete"

// ICascadeSoftDeleteService soft deletes or restores an entity together with
// everything that depends on it, in one transaction. As with the single
// service, only configuration errors come back as error.
type ICascadeSoftDeleteService interface {
	SetCascadeSoftDelete(ctx context.Context, rec *entity.Record) (*status.Status, error)
	SetCascadeSoftDeleteByKey(ctx context.Context, entityType string, key uuid.UUID) (*status.Status, error)
	ResetCascadeSoftDelete(ctx context.Context, rec *entity.Record) (*status.Status, error)
	ResetCascadeSoftDeleteByKey(ctx context.Context, entityType string, key uuid.UUID) (*status.Status, error)

	// CheckCascadeSoftDelete reports how many entities SetCascadeSoftDelete
	// would change, without changing them.
	CheckCascadeSoftDelete(ctx context.Context, rec *entity.Record) (*status.Status, error)
	CheckCascadeSoftDeleteByKey(ctx context.Context, entityType string, key uuid.UUID) (*status.Status, error)
	// CheckResetCascadeSoftDelete reports how many entities
	// ResetCascadeSoftDelete would restore, without restoring them.
	CheckResetCascadeSoftDelete(ctx context.Context, rec *entity.Record) (*status.Status, error)
	CheckResetCascadeSoftDeleteByKey(ctx context.Context, entityType string, key uuid.UUID) (*status.Status, error)

	// GetSoftDeletedEntries lists the entries of entityType that were cascade
	// soft deleted directly (level 1), i.e. the ones a reset can start from.
	GetSoftDeletedEntries(ctx context.Context, entityType string) (iter.Seq2[*entity.Record, error], error)
}

type cascadeAction int

const (
	actionSet cascadeAction = iota
	actionReset
)

func (a cascadeAction) String() string {
	if a == actionReset {
		return "reset"
	}
	return "set"
}

func (a cascadeAction) eventType() string {
	if a == actionReset {
		return events.CascadeSoftDeleteReset
	}
	return events.CascadeSoftDeleteSet
}

type levelChange struct {
	node  *walker.Node
	level uint8
}

type cascadeSoftDeleteService struct {
	uowFactory       unitofwork.RepositoryFactory
	graph            *descriptor.Graph
	tracker          *level.Tracker
	config           SoftDeleteConfig
	publisherService IPublisherService
	logger           logger.ILogger
}

// NewCascadeSoftDeleteService builds the service. publisherService may be nil.
func NewCascadeSoftDeleteService(
	uowFactory unitofwork.RepositoryFactory,
	graph *descriptor.Graph,
	config SoftDeleteConfig,
	publisherService IPublisherService,
	logger logger.ILogger,
) ICascadeSoftDeleteService {
	return &cascadeSoftDeleteService{
		uowFactory:       uowFactory,
		graph:            graph,
		tracker:          level.NewTracker(graph),
		config:           config,
		publisherService: publisherService,
		logger:           logger,
	}
}

func (s *cascadeSoftDeleteService) SetCascadeSoftDelete(ctx context.Context, rec *entity.Record) (*status.Status, error) {
	if rec == nil {
		return nilRecord(), nil
	}
	return s.run(ctx, actionSet, false, rec.Type, rec.Key)
}

func (s *cascadeSoftDeleteService) SetCascadeSoftDeleteByKey(ctx context.Context, entityType string, key uuid.UUID) (*status.Status, error) {
	return s.run(ctx, actionSet, false, entityType, key)
}

func (s *cascadeSoftDeleteService) ResetCascadeSoftDelete(ctx context.Context, rec *entity.Record) (*status.Status, error) {
	if rec == nil {
		return nilRecord(), nil
	}
	return s.run(ctx, actionReset, false, rec.Type, rec.Key)
}

func (s *cascadeSoftDeleteService) ResetCascadeSoftDeleteByKey(ctx context.Context, entityType string, key uuid.UUID) (*status.Status, error) {
	return s.run(ctx, actionReset, false, entityType, key)
}

func (s *cascadeSoftDeleteService) CheckCascadeSoftDelete(ctx context.Context, rec *entity.Record) (*status.Status, error) {
	if rec == nil {
		return nilRecord(), nil
	}
	return s.run(ctx, actionSet, true, rec.Type, rec.Key)
}

func (s *cascadeSoftDeleteService) CheckCascadeSoftDeleteByKey(ctx context.Context, entityType string, key uuid.UUID) (*status.Status, error) {
	return s.run(ctx, actionSet, true, entityType, key)
}

func (s *cascadeSoftDeleteService) CheckResetCascadeSoftDelete(ctx context.Context, rec *entity.Record) (*status.Status, error) {
	if rec == nil {
		return nilRecord(), nil
	}
	return s.run(ctx, actionReset, true, rec.Type, rec.Key)
}

func (s *cascadeSoftDeleteService) CheckResetCascadeSoftDeleteByKey(ctx context.Context, entityType string, key uuid.UUID) (*status.Status, error) {
	return s.run(ctx, actionReset, true, entityType, key)
}

func (s *cascadeSoftDeleteService) GetSoftDeletedEntries(ctx context.Context, entityType string) (iter.Seq2[*entity.Record, error], error) {
	t, err := s.graph.Require(entityType, descriptor.CapabilityCascade)
	if err != nil {
		return nil, err
	}
	return softDeletedEntries(ctx, s.uowFactory, s.config, t, specification.AtDeleteLevel{Type: t, Level: level.Root}), nil
}

// run is Resolve -> Walk -> Compute -> Apply -> Commit -> Report. Every read
// and write happens on one transaction; a dry run rolls it back after
// Compute.
func (s *cascadeSoftDeleteService) run(ctx context.Context, action cascadeAction, dryRun bool, entityType string, key uuid.UUID) (*status.Status, error) {
	ctx, span := startSpan(ctx, "CascadeSoftDelete."+action.String(), entityType, key)
	defer span.End()
	span.SetAttributes(attribute.Bool("softdelete.dry_run", dryRun))

	t, err := s.graph.Require(entityType, descriptor.CapabilityCascade)
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

	// Resolve
	root, err := repo.FindByKey(ctx, t, key)
	if err != nil {
		return s.failed(span, apperror.NewDatabase(err)), nil
	}
	if root == nil {
		s.logger.Warn(cascadeModule, "Entry not found", map[string]interface{}{
			"entity_type": entityType,
			"entity_id":   key.String(),
			"action":      action.String(),
		})
		return notFound(s.config, entityType, key), nil
	}

	// Walk + Compute
	var changes []levelChange
	if action == actionSet {
		changes, err = s.planSet(ctx, repo, root)
	} else {
		changes, err = s.planReset(ctx, repo, root)
	}
	if err != nil {
		if apperror.IsConfiguration(err) {
			markSpanError(span, err)
			return nil, err
		}
		if conflict, ok := apperror.AsAppError(err); ok && conflict.Code == apperror.CodeCascadeConflict {
			return s.failed(span, conflict), nil
		}
		return s.failed(span, apperror.NewDatabase(err)), nil
	}
	span.SetAttributes(attribute.Int("softdelete.affected", len(changes)))

	if dryRun || len(changes) == 0 {
		return status.Success(len(changes)), nil
	}

	// Apply + Commit
	for _, c := range changes {
		c.node.Record.SoftDeleteLevel = c.level
		if err := repo.UpdateDeleteState(ctx, c.node.Type, c.node.Record); err != nil {
			return s.failed(span, apperror.NewCommitFailure(err)), nil
		}
	}
	if err := uow.Commit(); err != nil {
		return s.failed(span, apperror.NewCommitFailure(err)), nil
	}

	// Report
	s.logger.Info(cascadeModule, "Cascade soft delete applied", map[string]interface{}{
		"entity_type": entityType,
		"entity_id":   key.String(),
		"action":      action.String(),
		"affected":    len(changes),
	})
	publishChange(ctx, s.publisherService, s.logger, cascadeModule, action.eventType(), entityType, key, len(changes))

	return status.Success(len(changes)), nil
}

// planSet levels every live entity reachable from root. Entities that are
// already soft deleted keep their level and their dependents are not
// explored: they belong to an earlier delete.
func (s *cascadeSoftDeleteService) planSet(ctx context.Context, repo contract.SoftDeleteRepository, root *entity.Record) ([]levelChange, error) {
	if root.SoftDeleteLevel > 0 {
		return nil, nil
	}

	nodes, err := walker.New(s.graph, repo).Walk(ctx, root, walker.WithExpand(func(n *walker.Node) bool {
		return n.Depth == 0 || n.Record.SoftDeleteLevel == 0
	}))
	if err != nil {
		return nil, err
	}

	levels := s.tracker.ComputeLevels(nodes)
	changes := make([]levelChange, 0, len(nodes))
	for _, n := range nodes {
		if n.Record.SoftDeleteLevel == 0 {
			changes = append(changes, levelChange{node: n, level: levels[n]})
		}
	}
	return changes, nil
}

// planReset clears the levels this root is responsible for. Only entities
// carrying the level a delete from root would have given them are explored.
// A reset must start where the delete started: a root soft deleted through
// an owner, or still held by a soft deleted owner, is refused.
func (s *cascadeSoftDeleteService) planReset(ctx context.Context, repo contract.SoftDeleteRepository, root *entity.Record) ([]levelChange, error) {
	if root.SoftDeleteLevel == 0 {
		return nil, nil
	}
	if root.SoftDeleteLevel != level.Root {
		return nil, apperror.NewCascadeConflict(
			"This entry was soft deleted %d levels above here, reset the entry it was deleted from.",
			root.SoftDeleteLevel-level.Root,
		).WithDetail("entity_id", root.Key.String())
	}
	rootLevel := root.SoftDeleteLevel

	nodes, err := walker.New(s.graph, repo).Walk(ctx, root, walker.WithExpand(func(n *walker.Node) bool {
		return n.Record.SoftDeleteLevel == level.Expected(rootLevel, n.Depth)
	}))
	if err != nil {
		return nil, err
	}

	resets, err := s.tracker.ComputeResets(ctx, nodes, rootLevel, repo)
	var held *level.HeldError
	if errors.As(err, &held) {
		return nil, apperror.NewCascadeConflict(
			"This entry is owned by %s which is still soft deleted, reset that entry first.",
			held.Owner.Identity(),
		).WithCause(err)
	}
	if err != nil {
		return nil, err
	}

	changes := make([]levelChange, 0, len(nodes))
	for _, n := range nodes {
		if resets[n] != n.Record.SoftDeleteLevel {
			changes = append(changes, levelChange{node: n, level: resets[n]})
		}
	}
	return changes, nil
}

func (s *cascadeSoftDeleteService) failed(span trace.Span, appErr *apperror.AppError) *status.Status {
	return failure(span, s.logger, cascadeModule, appErr)
}
