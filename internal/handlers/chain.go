package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/services"
)

type ChainHandler struct {
	log          *logger.Logger
	chainService services.ChainService
}

func NewChainHandler(log *logger.Logger, chainService services.ChainService) *ChainHandler {
	return &ChainHandler{
		log:          log.With("handler", "ChainHandler"),
		chainService: chainService,
	}
}

func (h *ChainHandler) ListAvailableChains(c *gin.Context) {
	fileNames, err := h.chainService.GetAvailableChains(c.Request.Context())
	if err != nil {
		h.log.Error("ListAvailableChains failed", "error", err)
		RespondServiceError(c, "load_available_chains_failed", err)
		return
	}
	RespondOK(c, gin.H{"chains": fileNames})
}

func (h *ChainHandler) SelectChains(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	var input services.ChainSelection
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	chains, err := h.chainService.SelectChains(c.Request.Context(), sessionID, input.FileNames)
	if err != nil {
		h.log.Error("SelectChains failed", "error", err, "session_id", sessionID)
		RespondServiceError(c, "select_chains_failed", err)
		return
	}
	RespondCreated(c, gin.H{"chains": chains})
}

func (h *ChainHandler) ListSessionChains(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	chains, err := h.chainService.GetSessionChains(c.Request.Context(), sessionID)
	if err != nil {
		RespondServiceError(c, "load_chains_failed", err)
		return
	}
	RespondOK(c, gin.H{"chains": chains})
}

func (h *ChainHandler) GetChain(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	chainID, err := uuid.Parse(c.Param("chain_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_chain_id", err)
		return
	}
	chain, err := h.chainService.GetChainByID(c.Request.Context(), sessionID, chainID)
	if err != nil {
		RespondServiceError(c, "load_chain_failed", err)
		return
	}
	RespondOK(c, chain)
}

func (h *ChainHandler) DeleteChain(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	chainID, err := uuid.Parse(c.Param("chain_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_chain_id", err)
		return
	}
	chain, err := h.chainService.DeleteSessionChain(c.Request.Context(), sessionID, chainID)
	if err != nil {
		h.log.Error("DeleteChain failed", "error", err, "chain_id", chainID)
		RespondServiceError(c, "delete_chain_failed", err)
		return
	}
	RespondOK(c, chain)
}

func (h *ChainHandler) DeleteSessionChains(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	if err := h.chainService.DeleteSessionChains(c.Request.Context(), sessionID); err != nil {
		h.log.Error("DeleteSessionChains failed", "error", err, "session_id", sessionID)
		RespondServiceError(c, "delete_chains_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ChainHandler) InvokeChain(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	chainID, err := uuid.Parse(c.Param("chain_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_chain_id", err)
		return
	}
	var input services.ChainInvocation
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	answers, err := h.chainService.InvokeChainBatch(c.Request.Context(), sessionID, chainID, input.ConfigurationID)
	if err != nil {
		h.log.Error("InvokeChain failed", "error", err, "chain_id", chainID)
		RespondServiceError(c, "invoke_chain_failed", err)
		return
	}
	RespondCreated(c, gin.H{"answers": answers})
}
