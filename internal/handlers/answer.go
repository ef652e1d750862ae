package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/services"
)

type AnswerHandler struct {
	log           *logger.Logger
	answerService services.AnswerService
}

func NewAnswerHandler(log *logger.Logger, answerService services.AnswerService) *AnswerHandler {
	return &AnswerHandler{
		log:           log.With("handler", "AnswerHandler"),
		answerService: answerService,
	}
}

func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}
	var input services.AnswerCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	answer, err := h.answerService.CreateAnswer(c.Request.Context(), questionID, input)
	if err != nil {
		h.log.Error("CreateAnswer failed", "error", err, "question_id", questionID)
		RespondServiceError(c, "create_answer_failed", err)
		return
	}
	RespondCreated(c, answer)
}

func (h *AnswerHandler) CreateAnswersBulk(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}
	var input []services.AnswerCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	answers, err := h.answerService.CreateAnswersBulk(c.Request.Context(), questionID, input)
	if err != nil {
		h.log.Error("CreateAnswersBulk failed", "error", err, "question_id", questionID)
		RespondServiceError(c, "create_answers_failed", err)
		return
	}
	RespondCreated(c, gin.H{"answers": answers})
}

func (h *AnswerHandler) ListQuestionAnswers(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}
	answers, err := h.answerService.GetAnswersByQuestion(c.Request.Context(), questionID)
	if err != nil {
		RespondServiceError(c, "load_answers_failed", err)
		return
	}
	RespondOK(c, gin.H{"answers": answers})
}

func (h *AnswerHandler) ListConfigurationAnswers(c *gin.Context) {
	configurationID, err := uuid.Parse(c.Param("configuration_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_configuration_id", err)
		return
	}
	answers, err := h.answerService.GetAnswersByConfiguration(c.Request.Context(), configurationID)
	if err != nil {
		RespondServiceError(c, "load_answers_failed", err)
		return
	}
	RespondOK(c, gin.H{"answers": answers})
}

func (h *AnswerHandler) GetConfigurationScore(c *gin.Context) {
	configurationID, err := uuid.Parse(c.Param("configuration_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_configuration_id", err)
		return
	}
	average, err := h.answerService.GetAverageScoreByConfiguration(c.Request.Context(), configurationID)
	if err != nil {
		h.log.Error("GetConfigurationScore failed", "error", err, "configuration_id", configurationID)
		RespondServiceError(c, "load_average_score_failed", err)
		return
	}
	RespondOK(c, gin.H{"configuration_id": configurationID, "average_score": average})
}

func (h *AnswerHandler) UpdateAnswerScore(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}
	answerID, err := uuid.Parse(c.Param("answer_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_answer_id", err)
		return
	}
	var input services.AnswerScoreUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	answer, err := h.answerService.UpdateAnswerScore(c.Request.Context(), questionID, answerID, input)
	if err != nil {
		h.log.Error("UpdateAnswerScore failed", "error", err, "answer_id", answerID)
		RespondServiceError(c, "update_answer_score_failed", err)
		return
	}
	RespondOK(c, answer)
}

func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}
	answerID, err := uuid.Parse(c.Param("answer_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_answer_id", err)
		return
	}
	answer, err := h.answerService.DeleteAnswer(c.Request.Context(), questionID, answerID)
	if err != nil {
		h.log.Error("DeleteAnswer failed", "error", err, "answer_id", answerID)
		RespondServiceError(c, "delete_answer_failed", err)
		return
	}
	RespondOK(c, answer)
}

func (h *AnswerHandler) DeleteQuestionAnswers(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}
	answers, err := h.answerService.DeleteAnswersByQuestion(c.Request.Context(), questionID)
	if err != nil {
		h.log.Error("DeleteQuestionAnswers failed", "error", err, "question_id", questionID)
		RespondServiceError(c, "delete_answers_failed", err)
		return
	}
	RespondOK(c, gin.H{"answers": answers})
}

func (h *AnswerHandler) CreateComment(c *gin.Context) {
	answerID, err := uuid.Parse(c.Param("answer_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_answer_id", err)
		return
	}
	var input services.AnswerCommentCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	comment, err := h.answerService.CreateComment(c.Request.Context(), answerID, input)
	if err != nil {
		h.log.Error("CreateComment failed", "error", err, "answer_id", answerID)
		RespondServiceError(c, "create_comment_failed", err)
		return
	}
	RespondCreated(c, comment)
}

func (h *AnswerHandler) ListComments(c *gin.Context) {
	answerID, err := uuid.Parse(c.Param("answer_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_answer_id", err)
		return
	}
	comments, err := h.answerService.GetAnswerComments(c.Request.Context(), answerID)
	if err != nil {
		RespondServiceError(c, "load_comments_failed", err)
		return
	}
	RespondOK(c, gin.H{"comments": comments})
}

func (h *AnswerHandler) UpdateComment(c *gin.Context) {
	answerID, err := uuid.Parse(c.Param("answer_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_answer_id", err)
		return
	}
	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_comment_id", err)
		return
	}
	var input services.AnswerCommentUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	comment, err := h.answerService.UpdateComment(c.Request.Context(), answerID, commentID, input)
	if err != nil {
		h.log.Error("UpdateComment failed", "error", err, "comment_id", commentID)
		RespondServiceError(c, "update_comment_failed", err)
		return
	}
	RespondOK(c, comment)
}

func (h *AnswerHandler) DeleteComment(c *gin.Context) {
	answerID, err := uuid.Parse(c.Param("answer_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_answer_id", err)
		return
	}
	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_comment_id", err)
		return
	}
	comment, err := h.answerService.DeleteComment(c.Request.Context(), answerID, commentID)
	if err != nil {
		h.log.Error("DeleteComment failed", "error", err, "comment_id", commentID)
		RespondServiceError(c, "delete_comment_failed", err)
		return
	}
	RespondOK(c, comment)
}
