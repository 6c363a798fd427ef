package unitofwork

import (
	"context"
	"fmt"

	"cascade-softdelete/internal/repository/contract"
	"cascade-softdelete/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db         *gorm.DB
	tx         *gorm.DB // active transaction, nil outside Begin/Commit
	userFilter interface{}
}

func NewUnitOfWork(db *gorm.DB, userFilter interface{}) UnitOfWork {
	return &UnitOfWorkImpl{
		db:         db,
		userFilter: userFilter,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) InTransaction() bool {
	return u.tx != nil
}

// Repository Accessors

func (u *UnitOfWorkImpl) SoftDeleteRepository() contract.SoftDeleteRepository {
	return implementation.NewSoftDeleteRepository(u.getDB(), u.userFilter)
}
