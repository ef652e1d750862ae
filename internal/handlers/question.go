package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/services"
)

type QuestionHandler struct {
	log             *logger.Logger
	questionService services.QuestionService
}

func NewQuestionHandler(log *logger.Logger, questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		log:             log.With("handler", "QuestionHandler"),
		questionService: questionService,
	}
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	var input services.QuestionCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	question, err := h.questionService.CreateQuestion(c.Request.Context(), sessionID, input)
	if err != nil {
		h.log.Error("CreateQuestion failed", "error", err, "session_id", sessionID)
		RespondServiceError(c, "create_question_failed", err)
		return
	}
	RespondCreated(c, question)
}

func (h *QuestionHandler) CreateQuestionsBulk(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	var input []services.QuestionCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	questions, err := h.questionService.CreateQuestionsBulk(c.Request.Context(), sessionID, input)
	if err != nil {
		h.log.Error("CreateQuestionsBulk failed", "error", err, "session_id", sessionID)
		RespondServiceError(c, "create_questions_failed", err)
		return
	}
	RespondCreated(c, gin.H{"questions": questions})
}

func (h *QuestionHandler) ListSessionQuestions(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	questions, err := h.questionService.GetSessionQuestions(c.Request.Context(), sessionID)
	if err != nil {
		RespondServiceError(c, "load_questions_failed", err)
		return
	}
	RespondOK(c, gin.H{"questions": questions})
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}
	var input services.QuestionUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	question, err := h.questionService.UpdateQuestion(c.Request.Context(), sessionID, questionID, input)
	if err != nil {
		h.log.Error("UpdateQuestion failed", "error", err, "question_id", questionID)
		RespondServiceError(c, "update_question_failed", err)
		return
	}
	RespondOK(c, question)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}
	question, err := h.questionService.DeleteQuestion(c.Request.Context(), sessionID, questionID)
	if err != nil {
		h.log.Error("DeleteQuestion failed", "error", err, "question_id", questionID)
		RespondServiceError(c, "delete_question_failed", err)
		return
	}
	RespondOK(c, question)
}

func (h *QuestionHandler) DeleteQuestionsBulk(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	var input services.QuestionBulkDelete
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	questions, err := h.questionService.DeleteQuestionsBulk(c.Request.Context(), sessionID, input.QuestionIDs)
	if err != nil {
		h.log.Error("DeleteQuestionsBulk failed", "error", err, "session_id", sessionID)
		RespondServiceError(c, "delete_questions_failed", err)
		return
	}
	RespondOK(c, gin.H{"questions": questions})
}

func (h *QuestionHandler) DeleteSessionQuestions(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	questions, err := h.questionService.DeleteSessionQuestions(c.Request.Context(), sessionID)
	if err != nil {
		h.log.Error("DeleteSessionQuestions failed", "error", err, "session_id", sessionID)
		RespondServiceError(c, "delete_questions_failed", err)
		return
	}
	RespondOK(c, gin.H{"questions": questions})
}
