package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/types"
)

type AnswerCommentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, comment *types.AnswerComment) (*types.AnswerComment, error)
	GetByID(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) (*types.AnswerComment, error)
	GetByAnswerID(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) ([]*types.AnswerComment, error)
	Update(ctx context.Context, tx *gorm.DB, comment *types.AnswerComment, fields map[string]interface{}) (*types.AnswerComment, error)
	Delete(ctx context.Context, tx *gorm.DB, comment *types.AnswerComment) (*types.AnswerComment, error)
}

type answerCommentRepo struct {
	*Base[types.AnswerComment]
}

func NewAnswerCommentRepo(db *gorm.DB, baseLog *logger.Logger) AnswerCommentRepo {
	return &answerCommentRepo{
		Base: NewBase[types.AnswerComment](db, baseLog, "AnswerComment", []string{"created_at", "last_modified"}),
	}
}

func (acr *answerCommentRepo) GetByAnswerID(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) ([]*types.AnswerComment, error) {
	transaction := acr.resolve(tx)

	var results []*types.AnswerComment
	if err := transaction.WithContext(ctx).
		Where("answer_id = ?", answerID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
