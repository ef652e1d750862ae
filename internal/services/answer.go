package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/repos"
	"github.com/yungbote/ragulator-backend/internal/types"
)

type AnswerService interface {
	CreateAnswer(ctx context.Context, questionID uuid.UUID, data AnswerCreate) (*types.Answer, error)
	CreateAnswersBulk(ctx context.Context, questionID uuid.UUID, data []AnswerCreate) ([]*types.Answer, error)
	GetAnswersByQuestion(ctx context.Context, questionID uuid.UUID) ([]*types.Answer, error)
	GetAnswersByConfiguration(ctx context.Context, configurationID uuid.UUID) ([]*types.Answer, error)
	GetAverageScoreByConfiguration(ctx context.Context, configurationID uuid.UUID) (float64, error)
	UpdateAnswerScore(ctx context.Context, questionID, answerID uuid.UUID, data AnswerScoreUpdate) (*types.Answer, error)
	DeleteAnswer(ctx context.Context, questionID, answerID uuid.UUID) (*types.Answer, error)
	DeleteAnswersByQuestion(ctx context.Context, questionID uuid.UUID) ([]*types.Answer, error)

	CreateComment(ctx context.Context, answerID uuid.UUID, data AnswerCommentCreate) (*types.AnswerComment, error)
	GetAnswerComments(ctx context.Context, answerID uuid.UUID) ([]*types.AnswerComment, error)
	UpdateComment(ctx context.Context, answerID, commentID uuid.UUID, data AnswerCommentUpdate) (*types.AnswerComment, error)
	DeleteComment(ctx context.Context, answerID, commentID uuid.UUID) (*types.AnswerComment, error)
}

type answerService struct {
	db           *gorm.DB
	log          *logger.Logger
	answerRepo   repos.AnswerRepo
	commentRepo  repos.AnswerCommentRepo
	questionRepo repos.QuestionRepo
	chainRepo    repos.ChainRepo
	configRepo   repos.ConfigurationRepo
}

func NewAnswerService(
	db *gorm.DB,
	baseLog *logger.Logger,
	answerRepo repos.AnswerRepo,
	commentRepo repos.AnswerCommentRepo,
	questionRepo repos.QuestionRepo,
	chainRepo repos.ChainRepo,
	configRepo repos.ConfigurationRepo,
) AnswerService {
	serviceLog := baseLog.With("service", "AnswerService")
	return &answerService{
		db:           db,
		log:          serviceLog,
		answerRepo:   answerRepo,
		commentRepo:  commentRepo,
		questionRepo: questionRepo,
		chainRepo:    chainRepo,
		configRepo:   configRepo,
	}
}

func (as *answerService) validateQuestion(ctx context.Context, questionID uuid.UUID) error {
	exists, err := as.questionRepo.Exists(ctx, nil, questionID)
	if err != nil {
		as.log.Error("Question validation failed", "question_id", questionID, "error", err)
		return &AnswerError{Msg: "Failed to validate question", Err: err}
	}
	if !exists {
		return &QuestionNotFoundError{QuestionID: questionID}
	}
	return nil
}

// validateReferences checks the chain and configuration an answer points
// at. A zero id is skipped, so bulk validation can pass the distinct ids
// it has already checked as uuid.Nil.
func (as *answerService) validateReferences(ctx context.Context, chainID, configurationID uuid.UUID) error {
	if chainID != uuid.Nil {
		exists, err := as.chainRepo.Exists(ctx, nil, chainID)
		if err != nil {
			as.log.Error("Chain validation failed", "chain_id", chainID, "error", err)
			return &AnswerError{Msg: "Failed to validate chain", Err: err}
		}
		if !exists {
			return &ChainNotFoundError{ChainID: chainID}
		}
	}
	if configurationID != uuid.Nil {
		exists, err := as.configRepo.Exists(ctx, nil, configurationID)
		if err != nil {
			as.log.Error("Configuration validation failed", "configuration_id", configurationID, "error", err)
			return &AnswerError{Msg: "Failed to validate configuration", Err: err}
		}
		if !exists {
			return &ConfigurationNotFoundError{ConfigurationID: configurationID}
		}
	}
	return nil
}

func (as *answerService) validateQuestionAnswer(ctx context.Context, questionID, answerID uuid.UUID) (*types.Answer, error) {
	if err := as.validateQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	answer, err := as.answerRepo.GetByID(ctx, nil, answerID)
	if err != nil {
		as.log.Error("Answer validation failed", "answer_id", answerID, "error", err)
		return nil, &AnswerError{Msg: "Failed to validate answer", Err: err}
	}
	if answer == nil {
		return nil, &AnswerNotFoundError{AnswerID: answerID}
	}
	if answer.QuestionID != questionID {
		return nil, &AnswerNotFoundError{AnswerID: answerID, QuestionID: questionID}
	}
	return answer, nil
}

func (as *answerService) validateAnswerComment(ctx context.Context, answerID, commentID uuid.UUID) (*types.AnswerComment, error) {
	answer, err := as.answerRepo.GetByID(ctx, nil, answerID)
	if err != nil {
		return nil, &AnswerError{Msg: "Failed to validate answer", Err: err}
	}
	if answer == nil {
		return nil, &AnswerNotFoundError{AnswerID: answerID}
	}
	comment, err := as.commentRepo.GetByID(ctx, nil, commentID)
	if err != nil {
		as.log.Error("Comment validation failed", "comment_id", commentID, "error", err)
		return nil, &AnswerError{Msg: "Failed to validate comment", Err: err}
	}
	if comment == nil {
		return nil, &AnswerCommentNotFoundError{CommentID: commentID}
	}
	if comment.AnswerID != answerID {
		return nil, &AnswerCommentNotFoundError{CommentID: commentID, AnswerID: answerID}
	}
	return comment, nil
}

func (as *answerService) CreateAnswer(ctx context.Context, questionID uuid.UUID, data AnswerCreate) (*types.Answer, error) {
	if err := as.validateQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	if err := as.validateReferences(ctx, data.ChainID, data.ConfigurationID); err != nil {
		return nil, err
	}

	answer := &types.Answer{
		ID:              uuid.New(),
		ChainID:         data.ChainID,
		QuestionID:      questionID,
		ConfigurationID: data.ConfigurationID,
		GeneratedAnswer: data.GeneratedAnswer,
		Score:           data.Score,
	}
	created, err := as.answerRepo.Create(ctx, nil, answer)
	if err != nil {
		as.log.Error("CreateAnswer failed", "question_id", questionID, "error", err)
		return nil, &AnswerError{Msg: "Failed to create answer", Err: err}
	}
	as.log.Info("Created answer", "question_id", questionID, "chain_id", data.ChainID)
	return created, nil
}

// CreateAnswersBulk validates each distinct chain and configuration once,
// then inserts the whole batch atomically. A single bad reference fails
// the entire call with the matching NotFound kind.
func (as *answerService) CreateAnswersBulk(ctx context.Context, questionID uuid.UUID, data []AnswerCreate) ([]*types.Answer, error) {
	if err := as.validateQuestion(ctx, questionID); err != nil {
		return nil, err
	}

	seenChains := make(map[uuid.UUID]bool)
	seenConfigs := make(map[uuid.UUID]bool)
	for _, a := range data {
		chainID, configID := a.ChainID, a.ConfigurationID
		if seenChains[chainID] {
			chainID = uuid.Nil
		}
		if seenConfigs[configID] {
			configID = uuid.Nil
		}
		if err := as.validateReferences(ctx, chainID, configID); err != nil {
			return nil, err
		}
		seenChains[a.ChainID] = true
		seenConfigs[a.ConfigurationID] = true
	}

	answers := make([]*types.Answer, 0, len(data))
	for _, a := range data {
		answers = append(answers, &types.Answer{
			ID:              uuid.New(),
			ChainID:         a.ChainID,
			QuestionID:      questionID,
			ConfigurationID: a.ConfigurationID,
			GeneratedAnswer: a.GeneratedAnswer,
			Score:           a.Score,
		})
	}
	created, err := as.answerRepo.CreateBulk(ctx, nil, answers)
	if err != nil {
		as.log.Error("CreateAnswersBulk failed", "question_id", questionID, "error", err)
		return nil, &AnswerError{Msg: "Failed to create answers in bulk", Err: err}
	}
	return created, nil
}

func (as *answerService) GetAnswersByQuestion(ctx context.Context, questionID uuid.UUID) ([]*types.Answer, error) {
	if err := as.validateQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	answers, err := as.answerRepo.GetByQuestionID(ctx, nil, questionID)
	if err != nil {
		as.log.Error("GetAnswersByQuestion failed", "question_id", questionID, "error", err)
		return nil, &AnswerError{Msg: "Failed to fetch answers", Err: err}
	}
	return answers, nil
}

func (as *answerService) GetAnswersByConfiguration(ctx context.Context, configurationID uuid.UUID) ([]*types.Answer, error) {
	if err := as.validateReferences(ctx, uuid.Nil, configurationID); err != nil {
		return nil, err
	}
	answers, err := as.answerRepo.GetByConfigurationID(ctx, nil, configurationID)
	if err != nil {
		as.log.Error("GetAnswersByConfiguration failed", "configuration_id", configurationID, "error", err)
		return nil, &AnswerError{Msg: "Failed to fetch answers", Err: err}
	}
	return answers, nil
}

// GetAverageScoreByConfiguration averages only the answers that have been
// scored. No scored answers yields 0.0, indistinguishable from a true
// zero average; callers that care should check the answer list.
func (as *answerService) GetAverageScoreByConfiguration(ctx context.Context, configurationID uuid.UUID) (float64, error) {
	answers, err := as.GetAnswersByConfiguration(ctx, configurationID)
	if err != nil {
		return 0, err
	}

	var sum, count int
	for _, a := range answers {
		if a.Score == nil {
			continue
		}
		sum += *a.Score
		count++
	}
	if count == 0 {
		return 0.0, nil
	}
	return float64(sum) / float64(count), nil
}

func (as *answerService) UpdateAnswerScore(ctx context.Context, questionID, answerID uuid.UUID, data AnswerScoreUpdate) (*types.Answer, error) {
	answer, err := as.validateQuestionAnswer(ctx, questionID, answerID)
	if err != nil {
		return nil, err
	}

	updated, err := as.answerRepo.Update(ctx, nil, answer, map[string]interface{}{
		"score": *data.Score,
	})
	if err != nil {
		as.log.Error("UpdateAnswerScore failed", "answer_id", answerID, "error", err)
		return nil, &AnswerError{Msg: "Failed to update answer score", Err: err}
	}
	as.log.Info("Scored answer", "answer_id", answerID, "score", *data.Score)
	return updated, nil
}

func (as *answerService) DeleteAnswer(ctx context.Context, questionID, answerID uuid.UUID) (*types.Answer, error) {
	answer, err := as.validateQuestionAnswer(ctx, questionID, answerID)
	if err != nil {
		return nil, err
	}
	deleted, err := as.answerRepo.Delete(ctx, nil, answer)
	if err != nil {
		as.log.Error("DeleteAnswer failed", "answer_id", answerID, "error", err)
		return nil, &AnswerError{Msg: "Failed to delete answer", Err: err}
	}
	as.log.Warn("Deleted answer", "answer_id", answerID, "question_id", questionID)
	return deleted, nil
}

func (as *answerService) DeleteAnswersByQuestion(ctx context.Context, questionID uuid.UUID) ([]*types.Answer, error) {
	if err := as.validateQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	answers, err := as.answerRepo.GetByQuestionID(ctx, nil, questionID)
	if err != nil {
		return nil, &AnswerError{Msg: "Failed to fetch answers", Err: err}
	}
	deleted, err := as.answerRepo.DeleteBulk(ctx, nil, answers)
	if err != nil {
		as.log.Error("DeleteAnswersByQuestion failed", "question_id", questionID, "error", err)
		return nil, &AnswerError{Msg: "Failed to delete answers", Err: err}
	}
	as.log.Warn("Deleted all answers for question", "question_id", questionID, "count", len(deleted))
	return deleted, nil
}

func (as *answerService) CreateComment(ctx context.Context, answerID uuid.UUID, data AnswerCommentCreate) (*types.AnswerComment, error) {
	answer, err := as.answerRepo.GetByID(ctx, nil, answerID)
	if err != nil {
		return nil, &AnswerError{Msg: "Failed to validate answer", Err: err}
	}
	if answer == nil {
		return nil, &AnswerNotFoundError{AnswerID: answerID}
	}

	comment := &types.AnswerComment{
		ID:          uuid.New(),
		AnswerID:    answerID,
		CommentText: data.CommentText,
	}
	created, err := as.commentRepo.Create(ctx, nil, comment)
	if err != nil {
		as.log.Error("CreateComment failed", "answer_id", answerID, "error", err)
		return nil, &AnswerError{Msg: "Failed to create comment", Err: err}
	}
	as.log.Info("Created comment", "answer_id", answerID)
	return created, nil
}

func (as *answerService) GetAnswerComments(ctx context.Context, answerID uuid.UUID) ([]*types.AnswerComment, error) {
	answer, err := as.answerRepo.GetByID(ctx, nil, answerID)
	if err != nil {
		return nil, &AnswerError{Msg: "Failed to validate answer", Err: err}
	}
	if answer == nil {
		return nil, &AnswerNotFoundError{AnswerID: answerID}
	}
	comments, err := as.commentRepo.GetByAnswerID(ctx, nil, answerID)
	if err != nil {
		as.log.Error("GetAnswerComments failed", "answer_id", answerID, "error", err)
		return nil, &AnswerError{Msg: "Failed to fetch comments", Err: err}
	}
	return comments, nil
}

func (as *answerService) UpdateComment(ctx context.Context, answerID, commentID uuid.UUID, data AnswerCommentUpdate) (*types.AnswerComment, error) {
	comment, err := as.validateAnswerComment(ctx, answerID, commentID)
	if err != nil {
		return nil, err
	}
	updated, err := as.commentRepo.Update(ctx, nil, comment, map[string]interface{}{
		"comment_text": data.CommentText,
	})
	if err != nil {
		as.log.Error("UpdateComment failed", "comment_id", commentID, "error", err)
		return nil, &AnswerError{Msg: "Failed to update comment", Err: err}
	}
	return updated, nil
}

func (as *answerService) DeleteComment(ctx context.Context, answerID, commentID uuid.UUID) (*types.AnswerComment, error) {
	comment, err := as.validateAnswerComment(ctx, answerID, commentID)
	if err != nil {
		return nil, err
	}
	deleted, err := as.commentRepo.Delete(ctx, nil, comment)
	if err != nil {
		as.log.Error("DeleteComment failed", "comment_id", commentID, "error", err)
		return nil, &AnswerError{Msg: "Failed to delete comment", Err: err}
	}
	as.log.Warn("Deleted comment", "comment_id", commentID, "answer_id", answerID)
	return deleted, nil
}
