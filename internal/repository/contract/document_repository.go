package contract

import (
	"context"

	"tenglaafi-be/internal/entity"
	"tenglaafi-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	CreateBulk(ctx context.Context, documents []*entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
