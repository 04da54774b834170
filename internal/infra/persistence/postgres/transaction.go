package postgres

import (
	"context"

	"registry/internal/domain/repository"
	"registry/internal/errors"

	"gorm.io/gorm"
)

// gormTransactionManager implements repository.TransactionManager on top of
// GORM transactions.
type gormTransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs fn inside a single transaction. The factory passed to fn hands
// out repositories bound to that transaction, so every operation inside fn
// commits or rolls back as one unit.
func (manager *gormTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) (err error) {
	tx := manager.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			err = errors.Errorf("panic during transaction: %v", r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	if err := fn(factory); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "rollback also failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}

// gormRepositoryFactory hands out repositories bound to a single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

func (factory *gormRepositoryFactory) FacilityRepo() repository.FacilityRepository {
	return NewFacilityRepository(factory.tx)
}

func (factory *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(factory.tx)
}
