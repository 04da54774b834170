// Package repository defines the interfaces for the persistence layer.
package repository

import "context"

// RepositoryFactory creates repository instances bound to one transaction.
type RepositoryFactory interface {
	FacilityRepo() FacilityRepository
	UserRepo() UserRepository
}

// TransactionManager runs a unit of work inside a single database
// transaction. The facility and geometry writes go through this so a failure
// between the two steps cannot leave a facility without its geometry row.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
