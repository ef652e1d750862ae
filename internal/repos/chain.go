package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/types"
)

type ChainRepo interface {
	CreateBulk(ctx context.Context, tx *gorm.DB, chains []*types.Chain) ([]*types.Chain, error)
	GetByID(ctx context.Context, tx *gorm.DB, chainID uuid.UUID) (*types.Chain, error)
	GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.Chain, error)
	GetFileNamesBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]string, error)
	Delete(ctx context.Context, tx *gorm.DB, chain *types.Chain) (*types.Chain, error)
	DeleteBulk(ctx context.Context, tx *gorm.DB, chains []*types.Chain) ([]*types.Chain, error)
	Exists(ctx context.Context, tx *gorm.DB, chainID uuid.UUID) (bool, error)
}

type chainRepo struct {
	*Base[types.Chain]
}

func NewChainRepo(db *gorm.DB, baseLog *logger.Logger) ChainRepo {
	return &chainRepo{
		Base: NewBase[types.Chain](db, baseLog, "Chain", []string{"created_at", "file_name"}),
	}
}

// CreateBulk inserts with ON CONFLICT DO NOTHING on the
// (session_id, file_name) index, so a concurrent duplicate selection
// degrades to the documented no-op instead of failing the batch. Rows
// skipped by the conflict clause never got their ids persisted, so the
// returned slice is filtered down to the rows that actually exist.
func (cr *chainRepo) CreateBulk(ctx context.Context, tx *gorm.DB, chains []*types.Chain) ([]*types.Chain, error) {
	transaction := cr.resolve(tx)

	if len(chains) == 0 {
		return []*types.Chain{}, nil
	}

	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "file_name"}},
			DoNothing: true,
		}).
		Create(&chains)
	if res.Error != nil {
		cr.log.Error("CreateBulk failed", "entity", cr.name, "count", len(chains), "error", res.Error)
		return nil, res.Error
	}
	if res.RowsAffected == int64(len(chains)) {
		return chains, nil
	}

	cr.log.Warn("Concurrent duplicate chains skipped",
		"entity", cr.name,
		"requested", len(chains),
		"inserted", res.RowsAffected)
	ids := make([]uuid.UUID, 0, len(chains))
	for _, chain := range chains {
		ids = append(ids, chain.ID)
	}
	var persisted []*types.Chain
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&persisted).Error; err != nil {
		return nil, err
	}
	return persisted, nil
}

func (cr *chainRepo) GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.Chain, error) {
	transaction := cr.resolve(tx)

	var results []*types.Chain
	if err := transaction.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *chainRepo) GetFileNamesBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]string, error) {
	transaction := cr.resolve(tx)

	var fileNames []string
	if err := transaction.WithContext(ctx).
		Model(&types.Chain{}).
		Where("session_id = ?", sessionID).
		Pluck("file_name", &fileNames).Error; err != nil {
		return nil, err
	}
	return fileNames, nil
}

func (cr *chainRepo) Exists(ctx context.Context, tx *gorm.DB, chainID uuid.UUID) (bool, error) {
	transaction := cr.resolve(tx)

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Chain{}).
		Where("id = ?", chainID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
