package services

import (
	"fmt"

	"github.com/google/uuid"
)

// Every entity family carries two error kinds: a base kind wrapping an
// unexpected store or network failure, and a NotFound kind for lookups
// that miss. Answer operations surface the referenced family's NotFound
// kind (ChainNotFoundError, QuestionNotFoundError,
// ConfigurationNotFoundError) rather than inventing answer-specific
// variants, so callers of AnswerService must handle all three.

type SessionError struct {
	Msg string
	Err error
}

func (e *SessionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *SessionError) Unwrap() error { return e.Err }

type SessionNotFoundError struct {
	SessionID uuid.UUID
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("Session '%s' not found", e.SessionID)
}

type ChainError struct {
	Msg string
	Err error
}

func (e *ChainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ChainError) Unwrap() error { return e.Err }

type ChainNotFoundError struct {
	ChainID   uuid.UUID
	SessionID uuid.UUID
}

func (e *ChainNotFoundError) Error() string {
	if e.SessionID != uuid.Nil {
		return fmt.Sprintf("Chain '%s' not found in session '%s'", e.ChainID, e.SessionID)
	}
	return fmt.Sprintf("Chain '%s' not found", e.ChainID)
}

type ConfigurationError struct {
	Msg string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

type ConfigurationNotFoundError struct {
	ConfigurationID uuid.UUID
	SessionID       uuid.UUID
}

func (e *ConfigurationNotFoundError) Error() string {
	if e.SessionID != uuid.Nil {
		return fmt.Sprintf("Configuration '%s' not found in session '%s'", e.ConfigurationID, e.SessionID)
	}
	return fmt.Sprintf("Configuration '%s' not found", e.ConfigurationID)
}

type QuestionError struct {
	Msg string
	Err error
}

func (e *QuestionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *QuestionError) Unwrap() error { return e.Err }

type QuestionNotFoundError struct {
	QuestionID uuid.UUID
	SessionID  uuid.UUID
}

func (e *QuestionNotFoundError) Error() string {
	if e.SessionID != uuid.Nil {
		return fmt.Sprintf("Question '%s' not found in session '%s'", e.QuestionID, e.SessionID)
	}
	return fmt.Sprintf("Question '%s' not found", e.QuestionID)
}

type AnswerError struct {
	Msg string
	Err error
}

func (e *AnswerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *AnswerError) Unwrap() error { return e.Err }

type AnswerNotFoundError struct {
	AnswerID   uuid.UUID
	QuestionID uuid.UUID
}

func (e *AnswerNotFoundError) Error() string {
	if e.QuestionID != uuid.Nil {
		return fmt.Sprintf("Answer '%s' not found in question '%s'", e.AnswerID, e.QuestionID)
	}
	return fmt.Sprintf("Answer '%s' not found", e.AnswerID)
}

type AnswerCommentNotFoundError struct {
	CommentID uuid.UUID
	AnswerID  uuid.UUID
}

func (e *AnswerCommentNotFoundError) Error() string {
	if e.AnswerID != uuid.Nil {
		return fmt.Sprintf("Comment '%s' not found on answer '%s'", e.CommentID, e.AnswerID)
	}
	return fmt.Sprintf("Comment '%s' not found", e.CommentID)
}
