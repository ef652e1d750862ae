package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ragulator-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondServiceError maps a service error onto a status code: every
// NotFound kind becomes a 404, anything else is an internal failure.
// 500 bodies carry only the operation-level description; the wrapped
// store cause stays in the logs.
func RespondServiceError(c *gin.Context, code string, err error) {
	var (
		sessionNotFound *services.SessionNotFoundError
		chainNotFound   *services.ChainNotFoundError
		configNotFound  *services.ConfigurationNotFoundError
		qstnNotFound    *services.QuestionNotFoundError
		answerNotFound  *services.AnswerNotFoundError
		commentNotFound *services.AnswerCommentNotFoundError
	)
	switch {
	case errors.As(err, &sessionNotFound),
		errors.As(err, &chainNotFound),
		errors.As(err, &configNotFound),
		errors.As(err, &qstnNotFound),
		errors.As(err, &answerNotFound),
		errors.As(err, &commentNotFound):
		RespondError(c, http.StatusNotFound, code, err)
	default:
		c.JSON(http.StatusInternalServerError, ErrorEnvelope{
			Error: APIError{
				Message: publicMessage(err),
				Code:    code,
			},
		})
	}
}

// publicMessage strips the wrapped cause off a family base error.
func publicMessage(err error) string {
	var (
		sessionErr  *services.SessionError
		chainErr    *services.ChainError
		configErr   *services.ConfigurationError
		questionErr *services.QuestionError
		answerErr   *services.AnswerError
	)
	switch {
	case errors.As(err, &sessionErr):
		return sessionErr.Msg
	case errors.As(err, &chainErr):
		return chainErr.Msg
	case errors.As(err, &configErr):
		return configErr.Msg
	case errors.As(err, &questionErr):
		return questionErr.Msg
	case errors.As(err, &answerErr):
		return answerErr.Msg
	}
	return "internal error"
}
