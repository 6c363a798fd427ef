package service

import (
	"cascade-softdelete/internal/pkg/logger"
	"cascade-softdelete/internal/repository/unitofwork"
	"cascade-softdelete/pkg/softdelete/descriptor"
)

// ISoftDeleteServiceProvider hands out services scoped to one caller's user
// filter. The graph and collaborators are shared.
type ISoftDeleteServiceProvider interface {
	Single(userFilter interface{}) ISingleSoftDeleteService
	Cascade(userFilter interface{}) ICascadeSoftDeleteService
}

type softDeleteServiceProvider struct {
	uowFactory           unitofwork.RepositoryFactory
	graph                *descriptor.Graph
	notFoundIsNotAnError bool
	publisherService     IPublisherService
	logger               logger.ILogger
}

func NewSoftDeleteServiceProvider(
	uowFactory unitofwork.RepositoryFactory,
	graph *descriptor.Graph,
	notFoundIsNotAnError bool,
	publisherService IPublisherService,
	logger logger.ILogger,
) ISoftDeleteServiceProvider {
	return &softDeleteServiceProvider{
		uowFactory:           uowFactory,
		graph:                graph,
		notFoundIsNotAnError: notFoundIsNotAnError,
		publisherService:     publisherService,
		logger:               logger,
	}
}

func (p *softDeleteServiceProvider) config(userFilter interface{}) SoftDeleteConfig {
	return SoftDeleteConfig{
		NotFoundIsNotAnError: p.notFoundIsNotAnError,
		UserFilterValue:      userFilter,
	}
}

func (p *softDeleteServiceProvider) Single(userFilter interface{}) ISingleSoftDeleteService {
	return NewSingleSoftDeleteService(p.uowFactory, p.graph, p.config(userFilter), p.publisherService, p.logger)
}

func (p *softDeleteServiceProvider) Cascade(userFilter interface{}) ICascadeSoftDeleteService {
	return NewCascadeSoftDeleteService(p.uowFactory, p.graph, p.config(userFilter), p.publisherService, p.logger)
}
