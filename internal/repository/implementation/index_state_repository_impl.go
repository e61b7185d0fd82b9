package implementation

import (
	"context"
	"errors"

	"tenglaafi-be/internal/entity"
	"tenglaafi-be/internal/mapper"
	"tenglaafi-be/internal/model"
	"tenglaafi-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IndexStateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IndexStateMapper
}

func NewIndexStateRepository(db *gorm.DB) contract.IndexStateRepository {
	return &IndexStateRepositoryImpl{
		db:     db,
		mapper: mapper.NewIndexStateMapper(),
	}
}

func (r *IndexStateRepositoryImpl) Get(ctx context.Context) (*entity.IndexState, error) {
	var m model.IndexState
	if err := r.db.WithContext(ctx).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *IndexStateRepositoryImpl) Save(ctx context.Context, state *entity.IndexState) error {
	if state.Id == uuid.Nil {
		state.Id = uuid.New()
	}
	m := r.mapper.ToModel(state)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*state = *r.mapper.ToEntity(m)
	return nil
}
