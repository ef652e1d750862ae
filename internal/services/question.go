package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/repos"
	"github.com/yungbote/ragulator-backend/internal/types"
)

type QuestionService interface {
	CreateQuestion(ctx context.Context, sessionID uuid.UUID, data QuestionCreate) (*types.Question, error)
	CreateQuestionsBulk(ctx context.Context, sessionID uuid.UUID, data []QuestionCreate) ([]*types.Question, error)
	GetSessionQuestions(ctx context.Context, sessionID uuid.UUID) ([]*types.Question, error)
	UpdateQuestion(ctx context.Context, sessionID, questionID uuid.UUID, data QuestionUpdate) (*types.Question, error)
	DeleteQuestion(ctx context.Context, sessionID, questionID uuid.UUID) (*types.Question, error)
	DeleteQuestionsBulk(ctx context.Context, sessionID uuid.UUID, questionIDs []uuid.UUID) ([]*types.Question, error)
	DeleteSessionQuestions(ctx context.Context, sessionID uuid.UUID) ([]*types.Question, error)
}

type questionService struct {
	db           *gorm.DB
	log          *logger.Logger
	questionRepo repos.QuestionRepo
	sessionRepo  repos.SessionRepo
}

func NewQuestionService(db *gorm.DB, baseLog *logger.Logger, questionRepo repos.QuestionRepo, sessionRepo repos.SessionRepo) QuestionService {
	serviceLog := baseLog.With("service", "QuestionService")
	return &questionService{
		db:           db,
		log:          serviceLog,
		questionRepo: questionRepo,
		sessionRepo:  sessionRepo,
	}
}

func (qs *questionService) validateSession(ctx context.Context, sessionID uuid.UUID) error {
	exists, err := qs.sessionRepo.Exists(ctx, nil, sessionID)
	if err != nil {
		qs.log.Error("Session validation failed", "session_id", sessionID, "error", err)
		return &QuestionError{Msg: "Failed to validate session", Err: err}
	}
	if !exists {
		return &SessionNotFoundError{SessionID: sessionID}
	}
	return nil
}

func (qs *questionService) validateSessionQuestion(ctx context.Context, sessionID, questionID uuid.UUID) (*types.Question, error) {
	if err := qs.validateSession(ctx, sessionID); err != nil {
		return nil, err
	}
	question, err := qs.questionRepo.GetByID(ctx, nil, questionID)
	if err != nil {
		qs.log.Error("Question validation failed", "question_id", questionID, "error", err)
		return nil, &QuestionError{Msg: "Failed to validate question", Err: err}
	}
	if question == nil {
		return nil, &QuestionNotFoundError{QuestionID: questionID}
	}
	if question.SessionID != sessionID {
		return nil, &QuestionNotFoundError{QuestionID: questionID, SessionID: sessionID}
	}
	return question, nil
}

func (qs *questionService) CreateQuestion(ctx context.Context, sessionID uuid.UUID, data QuestionCreate) (*types.Question, error) {
	if err := qs.validateSession(ctx, sessionID); err != nil {
		return nil, err
	}
	question := &types.Question{
		ID:             uuid.New(),
		SessionID:      sessionID,
		QuestionText:   data.QuestionText,
		ExpectedAnswer: data.ExpectedAnswer,
	}
	created, err := qs.questionRepo.Create(ctx, nil, question)
	if err != nil {
		qs.log.Error("CreateQuestion failed", "session_id", sessionID, "error", err)
		return nil, &QuestionError{Msg: "Failed to create question", Err: err}
	}
	qs.log.Info("Created question", "session_id", sessionID)
	return created, nil
}

// CreateQuestionsBulk inserts all questions in one transaction; a single
// bad row fails the whole batch.
func (qs *questionService) CreateQuestionsBulk(ctx context.Context, sessionID uuid.UUID, data []QuestionCreate) ([]*types.Question, error) {
	if err := qs.validateSession(ctx, sessionID); err != nil {
		return nil, err
	}
	questions := make([]*types.Question, 0, len(data))
	for _, q := range data {
		questions = append(questions, &types.Question{
			ID:             uuid.New(),
			SessionID:      sessionID,
			QuestionText:   q.QuestionText,
			ExpectedAnswer: q.ExpectedAnswer,
		})
	}
	created, err := qs.questionRepo.CreateBulk(ctx, nil, questions)
	if err != nil {
		qs.log.Error("CreateQuestionsBulk failed", "session_id", sessionID, "error", err)
		return nil, &QuestionError{Msg: "Failed to create questions in bulk", Err: err}
	}
	return created, nil
}

func (qs *questionService) GetSessionQuestions(ctx context.Context, sessionID uuid.UUID) ([]*types.Question, error) {
	if err := qs.validateSession(ctx, sessionID); err != nil {
		return nil, err
	}
	questions, err := qs.questionRepo.GetBySessionID(ctx, nil, sessionID)
	if err != nil {
		qs.log.Error("GetSessionQuestions failed", "session_id", sessionID, "error", err)
		return nil, &QuestionError{Msg: "Failed to fetch questions", Err: err}
	}
	return questions, nil
}

func (qs *questionService) UpdateQuestion(ctx context.Context, sessionID, questionID uuid.UUID, data QuestionUpdate) (*types.Question, error) {
	question, err := qs.validateSessionQuestion(ctx, sessionID, questionID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if data.QuestionText != nil {
		fields["question_text"] = *data.QuestionText
	}
	if data.ExpectedAnswer != nil {
		fields["expected_answer"] = *data.ExpectedAnswer
	}

	updated, err := qs.questionRepo.Update(ctx, nil, question, fields)
	if err != nil {
		qs.log.Error("UpdateQuestion failed", "question_id", questionID, "error", err)
		return nil, &QuestionError{Msg: "Failed to update question", Err: err}
	}
	return updated, nil
}

func (qs *questionService) DeleteQuestion(ctx context.Context, sessionID, questionID uuid.UUID) (*types.Question, error) {
	question, err := qs.validateSessionQuestion(ctx, sessionID, questionID)
	if err != nil {
		return nil, err
	}
	deleted, err := qs.questionRepo.Delete(ctx, nil, question)
	if err != nil {
		qs.log.Error("DeleteQuestion failed", "question_id", questionID, "error", err)
		return nil, &QuestionError{Msg: "Failed to delete question", Err: err}
	}
	qs.log.Warn("Deleted question", "question_id", questionID, "session_id", sessionID)
	return deleted, nil
}

// DeleteQuestionsBulk is best-effort, unlike the all-or-nothing bulk
// create: ids that don't resolve to a question in this session are
// skipped with a warning and the remaining ones are deleted in one
// transaction. Deleting an already-gone question is harmless; partially
// creating inconsistent data is not.
func (qs *questionService) DeleteQuestionsBulk(ctx context.Context, sessionID uuid.UUID, questionIDs []uuid.UUID) ([]*types.Question, error) {
	if err := qs.validateSession(ctx, sessionID); err != nil {
		return nil, err
	}

	var toDelete []*types.Question
	for _, questionID := range questionIDs {
		question, err := qs.validateSessionQuestion(ctx, sessionID, questionID)
		if err != nil {
			var notFound *QuestionNotFoundError
			if errors.As(err, &notFound) {
				qs.log.Warn("Question not found in session, skipping", "question_id", questionID, "session_id", sessionID)
				continue
			}
			return nil, err
		}
		toDelete = append(toDelete, question)
	}

	if len(toDelete) == 0 {
		return []*types.Question{}, nil
	}

	qs.log.Warn("Deleting questions from session", "session_id", sessionID, "count", len(toDelete))
	deleted, err := qs.questionRepo.DeleteBulk(ctx, nil, toDelete)
	if err != nil {
		qs.log.Error("DeleteQuestionsBulk failed", "session_id", sessionID, "error", err)
		return nil, &QuestionError{Msg: "Failed to delete questions in bulk", Err: err}
	}
	return deleted, nil
}

func (qs *questionService) DeleteSessionQuestions(ctx context.Context, sessionID uuid.UUID) ([]*types.Question, error) {
	if err := qs.validateSession(ctx, sessionID); err != nil {
		return nil, err
	}
	questions, err := qs.questionRepo.GetBySessionID(ctx, nil, sessionID)
	if err != nil {
		return nil, &QuestionError{Msg: "Failed to fetch questions", Err: err}
	}
	deleted, err := qs.questionRepo.DeleteBulk(ctx, nil, questions)
	if err != nil {
		qs.log.Error("DeleteSessionQuestions failed", "session_id", sessionID, "error", err)
		return nil, &QuestionError{Msg: "Failed to delete questions", Err: err}
	}
	qs.log.Warn("Deleted all questions for session", "session_id", sessionID, "count", len(deleted))
	return deleted, nil
}
