package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/types"
)

type AnswerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, answer *types.Answer) (*types.Answer, error)
	CreateBulk(ctx context.Context, tx *gorm.DB, answers []*types.Answer) ([]*types.Answer, error)
	GetByID(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) (*types.Answer, error)
	GetByQuestionID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) ([]*types.Answer, error)
	GetByConfigurationID(ctx context.Context, tx *gorm.DB, configurationID uuid.UUID) ([]*types.Answer, error)
	Update(ctx context.Context, tx *gorm.DB, answer *types.Answer, fields map[string]interface{}) (*types.Answer, error)
	Delete(ctx context.Context, tx *gorm.DB, answer *types.Answer) (*types.Answer, error)
	DeleteBulk(ctx context.Context, tx *gorm.DB, answers []*types.Answer) ([]*types.Answer, error)
}

type answerRepo struct {
	*Base[types.Answer]
}

func NewAnswerRepo(db *gorm.DB, baseLog *logger.Logger) AnswerRepo {
	return &answerRepo{
		Base: NewBase[types.Answer](db, baseLog, "Answer", []string{"created_at", "score"}),
	}
}

func (ar *answerRepo) GetByQuestionID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) ([]*types.Answer, error) {
	transaction := ar.resolve(tx)

	var results []*types.Answer
	if err := transaction.WithContext(ctx).
		Where("question_id = ?", questionID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *answerRepo) GetByConfigurationID(ctx context.Context, tx *gorm.DB, configurationID uuid.UUID) ([]*types.Answer, error) {
	transaction := ar.resolve(tx)

	var results []*types.Answer
	if err := transaction.WithContext(ctx).
		Where("configuration_id = ?", configurationID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
