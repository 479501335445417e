package repository

import "context"

// RepositoryFactory hands out repository instances bound to one transaction.
// Use cases receive it inside TransactionManager.Execute and must not retain
// the repositories beyond the callback.
type RepositoryFactory interface {
	UserRepo() UserRepository
	CredentialRepo() CredentialRepository
	MetricRepo() MetricRepository
	AuditRepo() AuditRepository
}

// TransactionManager runs a unit of work atomically. The OAuth callback
// (exchange + credential upsert) and the cache write-through (fetch + cache
// write) each run inside Execute so a crash cannot leave half-written state.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
