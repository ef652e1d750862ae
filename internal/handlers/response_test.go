package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ragulator-backend/internal/services"
)

func TestRespondServiceError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"session not found", &services.SessionNotFoundError{SessionID: uuid.New()}, http.StatusNotFound},
		{"chain not found", &services.ChainNotFoundError{ChainID: uuid.New()}, http.StatusNotFound},
		{"configuration not found", &services.ConfigurationNotFoundError{ConfigurationID: uuid.New()}, http.StatusNotFound},
		{"question not found", &services.QuestionNotFoundError{QuestionID: uuid.New()}, http.StatusNotFound},
		{"answer not found", &services.AnswerNotFoundError{AnswerID: uuid.New()}, http.StatusNotFound},
		{"comment not found", &services.AnswerCommentNotFoundError{CommentID: uuid.New()}, http.StatusNotFound},
		{"store failure", &services.SessionError{Msg: "boom", Err: errors.New("db down")}, http.StatusInternalServerError},
		{"plain error", errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			RespondServiceError(c, "op_failed", tc.err)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var envelope ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if envelope.Error.Code != "op_failed" {
				t.Errorf("code = %q, want op_failed", envelope.Error.Code)
			}
			if envelope.Error.Message == "" {
				t.Error("message is empty")
			}
		})
	}
}

func TestRespondServiceError_HidesStoreCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	cause := `pq: password authentication failed for user "postgres"`
	RespondServiceError(c, "create_session_failed", &services.SessionError{
		Msg: "Failed to create session",
		Err: errors.New(cause),
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Error.Message != "Failed to create session" {
		t.Errorf("message = %q, want the operation description only", envelope.Error.Message)
	}
	if strings.Contains(rec.Body.String(), "password authentication") {
		t.Errorf("body leaks store cause: %s", rec.Body.String())
	}
}

func TestRespondServiceError_WrappedNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	// NotFound kinds stay 404 even when another layer wrapped them.
	wrapped := &services.ChainError{
		Msg: "Failed to validate chain",
		Err: &services.SessionNotFoundError{SessionID: uuid.New()},
	}
	RespondServiceError(c, "op_failed", wrapped)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
