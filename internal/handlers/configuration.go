package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/services"
)

type ConfigurationHandler struct {
	log           *logger.Logger
	configService services.ConfigurationService
}

func NewConfigurationHandler(log *logger.Logger, configService services.ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{
		log:           log.With("handler", "ConfigurationHandler"),
		configService: configService,
	}
}

func (h *ConfigurationHandler) CreateConfiguration(c *gin.Context) {
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
	var input services.ConfigurationCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	config, err := h.configService.CreateConfiguration(c.Request.Context(), sessionID, chainID, input)
	if err != nil {
		h.log.Error("CreateConfiguration failed", "error", err, "chain_id", chainID)
		RespondServiceError(c, "create_configuration_failed", err)
		return
	}
	RespondCreated(c, config)
}

func (h *ConfigurationHandler) ListSessionConfigurations(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	configs, err := h.configService.GetSessionConfigurations(c.Request.Context(), sessionID)
	if err != nil {
		RespondServiceError(c, "load_configurations_failed", err)
		return
	}
	RespondOK(c, gin.H{"configurations": configs})
}

func (h *ConfigurationHandler) ListChainConfigurations(c *gin.Context) {
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
	configs, err := h.configService.GetChainConfigurations(c.Request.Context(), sessionID, chainID)
	if err != nil {
		RespondServiceError(c, "load_configurations_failed", err)
		return
	}
	RespondOK(c, gin.H{"configurations": configs})
}

func (h *ConfigurationHandler) GetChainSchema(c *gin.Context) {
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
	schema, err := h.configService.GetChainSchema(c.Request.Context(), sessionID, chainID)
	if err != nil {
		h.log.Error("GetChainSchema failed", "error", err, "chain_id", chainID)
		RespondServiceError(c, "load_chain_schema_failed", err)
		return
	}
	RespondOK(c, schema)
}

func (h *ConfigurationHandler) GetConfiguration(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	configID, err := uuid.Parse(c.Param("config_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_configuration_id", err)
		return
	}
	config, err := h.configService.GetConfigurationByID(c.Request.Context(), sessionID, configID)
	if err != nil {
		RespondServiceError(c, "load_configuration_failed", err)
		return
	}
	RespondOK(c, config)
}

func (h *ConfigurationHandler) UpdateConfiguration(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	configID, err := uuid.Parse(c.Param("config_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_configuration_id", err)
		return
	}
	var input services.ConfigurationUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	config, err := h.configService.UpdateConfiguration(c.Request.Context(), sessionID, configID, input)
	if err != nil {
		h.log.Error("UpdateConfiguration failed", "error", err, "configuration_id", configID)
		RespondServiceError(c, "update_configuration_failed", err)
		return
	}
	RespondOK(c, config)
}

func (h *ConfigurationHandler) DeleteConfiguration(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	configID, err := uuid.Parse(c.Param("config_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_configuration_id", err)
		return
	}
	config, err := h.configService.DeleteConfiguration(c.Request.Context(), sessionID, configID)
	if err != nil {
		h.log.Error("DeleteConfiguration failed", "error", err, "configuration_id", configID)
		RespondServiceError(c, "delete_configuration_failed", err)
		return
	}
	RespondOK(c, config)
}
