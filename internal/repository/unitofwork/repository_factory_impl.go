package unitofwork

import (
	"context"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct {
	db *gorm.DB
}

func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	return &RepositoryFactoryImpl{
		db: db,
	}
}

func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context, opts ...Option) UnitOfWork {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	// UoW is short lived, one per operation; the context goes to Begin.
	return NewUnitOfWork(f.db, o.userFilter)
}
