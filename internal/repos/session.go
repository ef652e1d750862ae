package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/types"
)

type SessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *types.Session) (*types.Session, error)
	GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.Session, error)
	GetMulti(ctx context.Context, tx *gorm.DB, skip, limit int, orderBy string, ascending bool) ([]*types.Session, error)
	Update(ctx context.Context, tx *gorm.DB, session *types.Session, fields map[string]interface{}) (*types.Session, error)
	Delete(ctx context.Context, tx *gorm.DB, session *types.Session) (*types.Session, error)
	Exists(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (bool, error)
}

type sessionRepo struct {
	*Base[types.Session]
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return &sessionRepo{
		Base: NewBase[types.Session](db, baseLog, "Session", []string{"created_at", "last_modified", "name"}),
	}
}

func (sr *sessionRepo) Exists(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (bool, error) {
	transaction := sr.resolve(tx)

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Session{}).
		Where("id = ?", sessionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
