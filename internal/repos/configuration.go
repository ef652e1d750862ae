package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/types"
)

type ConfigurationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, config *types.Configuration) (*types.Configuration, error)
	GetByID(ctx context.Context, tx *gorm.DB, configID uuid.UUID) (*types.Configuration, error)
	GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.Configuration, error)
	GetByChainID(ctx context.Context, tx *gorm.DB, chainID uuid.UUID) ([]*types.Configuration, error)
	Update(ctx context.Context, tx *gorm.DB, config *types.Configuration, fields map[string]interface{}) (*types.Configuration, error)
	Delete(ctx context.Context, tx *gorm.DB, config *types.Configuration) (*types.Configuration, error)
	Exists(ctx context.Context, tx *gorm.DB, configID uuid.UUID) (bool, error)
}

type configurationRepo struct {
	*Base[types.Configuration]
}

func NewConfigurationRepo(db *gorm.DB, baseLog *logger.Logger) ConfigurationRepo {
	return &configurationRepo{
		Base: NewBase[types.Configuration](db, baseLog, "Configuration", []string{"created_at"}),
	}
}

func (cr *configurationRepo) GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.Configuration, error) {
	transaction := cr.resolve(tx)

	var results []*types.Configuration
	if err := transaction.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *configurationRepo) GetByChainID(ctx context.Context, tx *gorm.DB, chainID uuid.UUID) ([]*types.Configuration, error) {
	transaction := cr.resolve(tx)

	var results []*types.Configuration
	if err := transaction.WithContext(ctx).
		Where("chain_id = ?", chainID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *configurationRepo) Exists(ctx context.Context, tx *gorm.DB, configID uuid.UUID) (bool, error) {
	transaction := cr.resolve(tx)

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Configuration{}).
		Where("id = ?", configID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
