package services

import (
	"github.com/google/uuid"
)

// Request payloads accepted by the services. Binding tags enforce the
// boundary validation (required fields, score range) before anything
// reaches the store.

type SessionCreate struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type SessionUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ChainSelection struct {
	FileNames []string `json:"file_names" binding:"required"`
}

type ChainInvocation struct {
	ConfigurationID uuid.UUID `json:"configuration_id" binding:"required"`
}

type QuestionCreate struct {
	QuestionText   string  `json:"question_text" binding:"required"`
	ExpectedAnswer *string `json:"expected_answer"`
}

type QuestionUpdate struct {
	QuestionText   *string `json:"question_text"`
	ExpectedAnswer *string `json:"expected_answer"`
}

type QuestionBulkDelete struct {
	QuestionIDs []uuid.UUID `json:"question_ids" binding:"required"`
}

type ConfigurationCreate struct {
	ConfigValues map[string]interface{} `json:"config_values"`
}

type ConfigurationUpdate struct {
	ConfigValues map[string]interface{} `json:"config_values"`
}

type AnswerCreate struct {
	ChainID         uuid.UUID `json:"chain_id" binding:"required"`
	ConfigurationID uuid.UUID `json:"configuration_id" binding:"required"`
	GeneratedAnswer string    `json:"generated_answer" binding:"required"`
	Score           *int      `json:"score" binding:"omitempty,min=0,max=5"`
}

type AnswerScoreUpdate struct {
	Score *int `json:"score" binding:"required,min=0,max=5"`
}

type AnswerCommentCreate struct {
	CommentText string `json:"comment_text" binding:"required"`
}

type AnswerCommentUpdate struct {
	CommentText string `json:"comment_text" binding:"required"`
}
