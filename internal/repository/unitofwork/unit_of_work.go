package unitofwork

import (
	"context"

	"cascade-softdelete/internal/repository/contract"
)

// UnitOfWork is one transactional session. Repositories handed out after
// Begin run on the transaction; before Begin they run on the plain pool.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error
	InTransaction() bool

	SoftDeleteRepository() contract.SoftDeleteRepository
}
