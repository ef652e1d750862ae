package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/services"
)

type SessionHandler struct {
	log            *logger.Logger
	sessionService services.SessionService
}

func NewSessionHandler(log *logger.Logger, sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{
		log:            log.With("handler", "SessionHandler"),
		sessionService: sessionService,
	}
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	var input services.SessionCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	session, err := h.sessionService.CreateSession(c.Request.Context(), input)
	if err != nil {
		h.log.Error("CreateSession failed", "error", err)
		RespondServiceError(c, "create_session_failed", err)
		return
	}
	RespondCreated(c, session)
}

func (h *SessionHandler) ListSessions(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_skip", err)
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_limit", err)
		return
	}
	sessions, err := h.sessionService.GetSessions(c.Request.Context(), skip, limit)
	if err != nil {
		h.log.Error("ListSessions failed", "error", err)
		RespondServiceError(c, "load_sessions_failed", err)
		return
	}
	RespondOK(c, gin.H{"sessions": sessions})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	session, err := h.sessionService.GetSessionByID(c.Request.Context(), sessionID)
	if err != nil {
		RespondServiceError(c, "load_session_failed", err)
		return
	}
	RespondOK(c, session)
}

func (h *SessionHandler) UpdateSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	var input services.SessionUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	session, err := h.sessionService.UpdateSession(c.Request.Context(), sessionID, input)
	if err != nil {
		h.log.Error("UpdateSession failed", "error", err, "session_id", sessionID)
		RespondServiceError(c, "update_session_failed", err)
		return
	}
	RespondOK(c, session)
}

func (h *SessionHandler) DeleteSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	session, err := h.sessionService.DeleteSession(c.Request.Context(), sessionID)
	if err != nil {
		h.log.Error("DeleteSession failed", "error", err, "session_id", sessionID)
		RespondServiceError(c, "delete_session_failed", err)
		return
	}
	RespondOK(c, session)
}
