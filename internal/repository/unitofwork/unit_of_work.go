package unitofwork

import (
	"context"

	"tenglaafi-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository
	IndexStateRepository() contract.IndexStateRepository
}
