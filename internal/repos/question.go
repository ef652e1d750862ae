package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/types"
)

type QuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error)
	CreateBulk(ctx context.Context, tx *gorm.DB, questions []*types.Question) ([]*types.Question, error)
	GetByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.Question, error)
	GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.Question, error)
	Update(ctx context.Context, tx *gorm.DB, question *types.Question, fields map[string]interface{}) (*types.Question, error)
	Delete(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error)
	DeleteBulk(ctx context.Context, tx *gorm.DB, questions []*types.Question) ([]*types.Question, error)
	Exists(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (bool, error)
}

type questionRepo struct {
	*Base[types.Question]
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{
		Base: NewBase[types.Question](db, baseLog, "Question", []string{"created_at", "last_modified"}),
	}
}

func (qr *questionRepo) GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.Question, error) {
	transaction := qr.resolve(tx)

	var results []*types.Question
	if err := transaction.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questionRepo) Exists(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (bool, error) {
	transaction := qr.resolve(tx)

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Question{}).
		Where("id = ?", questionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
