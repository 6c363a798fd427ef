package unitofwork

import "context"

type Option func(*options)

type options struct {
	userFilter interface{}
}

// WithUserFilter scopes every repository of the unit of work to rows whose
// user column equals value. A nil value disables the scope.
func WithUserFilter(value interface{}) Option {
	return func(o *options) {
		o.userFilter = value
	}
}

type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context, opts ...Option) UnitOfWork
}
