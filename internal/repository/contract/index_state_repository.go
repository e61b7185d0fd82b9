package contract

import (
	"context"

	"tenglaafi-be/internal/entity"
)

type IndexStateRepository interface {
	// Get returns the current index state, or nil when the index has
	// never been built.
	Get(ctx context.Context) (*entity.IndexState, error)
	Save(ctx context.Context, state *entity.IndexState) error
}
