package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/services"
	"github.com/yungbote/ragulator-backend/internal/types"
)

// stubAnswerService records score updates; any other method call panics,
// which is the point - requests rejected by binding must never reach the
// service.
type stubAnswerService struct {
	services.AnswerService
	scored *int
}

func (s *stubAnswerService) UpdateAnswerScore(ctx context.Context, questionID, answerID uuid.UUID, data services.AnswerScoreUpdate) (*types.Answer, error) {
	s.scored = data.Score
	return &types.Answer{ID: answerID, QuestionID: questionID, Score: data.Score}, nil
}

func scoreRouter(stub *stubAnswerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	h := NewAnswerHandler(log, stub)
	r := gin.New()
	r.PATCH("/questions/:question_id/answers/:answer_id", h.UpdateAnswerScore)
	return r
}

func patchScore(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	url := "/questions/" + uuid.NewString() + "/answers/" + uuid.NewString()
	req := httptest.NewRequest(http.MethodPatch, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUpdateAnswerScore_RejectsOutOfRange(t *testing.T) {
	for _, body := range []string{`{"score":6}`, `{"score":-1}`, `{}`} {
		stub := &stubAnswerService{}
		rec := patchScore(t, scoreRouter(stub), body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
		if stub.scored != nil {
			t.Errorf("body %s: service was called with score %d", body, *stub.scored)
		}
	}
}

func TestUpdateAnswerScore_AcceptsBoundaryValues(t *testing.T) {
	for _, tc := range []struct {
		body string
		want int
	}{
		{`{"score":0}`, 0},
		{`{"score":5}`, 5},
	} {
		stub := &stubAnswerService{}
		rec := patchScore(t, scoreRouter(stub), tc.body)
		if rec.Code != http.StatusOK {
			t.Errorf("body %s: status = %d, want 200", tc.body, rec.Code)
		}
		if stub.scored == nil || *stub.scored != tc.want {
			t.Errorf("body %s: service got score %v, want %d", tc.body, stub.scored, tc.want)
		}
	}
}
