package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/ragulator-backend/internal/clients/langserve"
	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/repos"
	"github.com/yungbote/ragulator-backend/internal/types"
)

type ConfigurationService interface {
	CreateConfiguration(ctx context.Context, sessionID, chainID uuid.UUID, data ConfigurationCreate) (*types.Configuration, error)
	GetSessionConfigurations(ctx context.Context, sessionID uuid.UUID) ([]*types.Configuration, error)
	GetChainConfigurations(ctx context.Context, sessionID, chainID uuid.UUID) ([]*types.Configuration, error)
	GetConfigurationByID(ctx context.Context, sessionID, configID uuid.UUID) (*types.Configuration, error)
	GetChainSchema(ctx context.Context, sessionID, chainID uuid.UUID) (map[string]interface{}, error)
	UpdateConfiguration(ctx context.Context, sessionID, configID uuid.UUID, data ConfigurationUpdate) (*types.Configuration, error)
	DeleteConfiguration(ctx context.Context, sessionID, configID uuid.UUID) (*types.Configuration, error)
}

type configurationService struct {
	db          *gorm.DB
	log         *logger.Logger
	configRepo  repos.ConfigurationRepo
	sessionRepo repos.SessionRepo
	chainRepo   repos.ChainRepo
	langserve   langserve.Client
}

func NewConfigurationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	configRepo repos.ConfigurationRepo,
	sessionRepo repos.SessionRepo,
	chainRepo repos.ChainRepo,
	langserveClient langserve.Client,
) ConfigurationService {
	serviceLog := baseLog.With("service", "ConfigurationService")
	return &configurationService{
		db:          db,
		log:         serviceLog,
		configRepo:  configRepo,
		sessionRepo: sessionRepo,
		chainRepo:   chainRepo,
		langserve:   langserveClient,
	}
}

func (cs *configurationService) validateSession(ctx context.Context, sessionID uuid.UUID) error {
	exists, err := cs.sessionRepo.Exists(ctx, nil, sessionID)
	if err != nil {
		cs.log.Error("Session validation failed", "session_id", sessionID, "error", err)
		return &ConfigurationError{Msg: "Failed to validate session", Err: err}
	}
	if !exists {
		return &SessionNotFoundError{SessionID: sessionID}
	}
	return nil
}

func (cs *configurationService) validateSessionChain(ctx context.Context, sessionID, chainID uuid.UUID) (*types.Chain, error) {
	if err := cs.validateSession(ctx, sessionID); err != nil {
		return nil, err
	}
	chain, err := cs.chainRepo.GetByID(ctx, nil, chainID)
	if err != nil {
		cs.log.Error("Chain validation failed", "chain_id", chainID, "error", err)
		return nil, &ConfigurationError{Msg: "Failed to validate chain", Err: err}
	}
	if chain == nil {
		return nil, &ChainNotFoundError{ChainID: chainID}
	}
	if chain.SessionID != sessionID {
		return nil, &ChainNotFoundError{ChainID: chainID, SessionID: sessionID}
	}
	return chain, nil
}

func (cs *configurationService) validateSessionConfiguration(ctx context.Context, sessionID, configID uuid.UUID) (*types.Configuration, error) {
	if err := cs.validateSession(ctx, sessionID); err != nil {
		return nil, err
	}
	config, err := cs.configRepo.GetByID(ctx, nil, configID)
	if err != nil {
		cs.log.Error("Configuration validation failed", "configuration_id", configID, "error", err)
		return nil, &ConfigurationError{Msg: "Failed to validate configuration", Err: err}
	}
	if config == nil {
		return nil, &ConfigurationNotFoundError{ConfigurationID: configID}
	}
	if config.SessionID != sessionID {
		return nil, &ConfigurationNotFoundError{ConfigurationID: configID, SessionID: sessionID}
	}
	return config, nil
}

// CreateConfiguration persists the parameter values for a chain and
// caches the chain's config schema alongside them. A schema fetch
// failure only costs the cache, never the create.
func (cs *configurationService) CreateConfiguration(ctx context.Context, sessionID, chainID uuid.UUID, data ConfigurationCreate) (*types.Configuration, error) {
	chain, err := cs.validateSessionChain(ctx, sessionID, chainID)
	if err != nil {
		return nil, err
	}

	config := &types.Configuration{
		ID:        uuid.New(),
		SessionID: sessionID,
		ChainID:   chainID,
	}
	if data.ConfigValues != nil {
		raw, err := json.Marshal(data.ConfigValues)
		if err != nil {
			return nil, &ConfigurationError{Msg: "Failed to encode configuration values", Err: err}
		}
		config.ConfigValues = datatypes.JSON(raw)
	}

	if schema, err := cs.langserve.GetConfigSchema(ctx, chain.FileName); err != nil {
		cs.log.Warn("Could not cache config schema", "chain_id", chainID, "error", err)
	} else if raw, err := json.Marshal(schema); err == nil {
		config.ConfigSchema = datatypes.JSON(raw)
	}

	created, err := cs.configRepo.Create(ctx, nil, config)
	if err != nil {
		cs.log.Error("CreateConfiguration failed", "session_id", sessionID, "error", err)
		return nil, &ConfigurationError{Msg: "Failed to create configuration", Err: err}
	}
	cs.log.Info("Created configuration", "session_id", sessionID, "chain_id", chainID)
	return created, nil
}

func (cs *configurationService) GetSessionConfigurations(ctx context.Context, sessionID uuid.UUID) ([]*types.Configuration, error) {
	if err := cs.validateSession(ctx, sessionID); err != nil {
		return nil, err
	}
	configs, err := cs.configRepo.GetBySessionID(ctx, nil, sessionID)
	if err != nil {
		cs.log.Error("GetSessionConfigurations failed", "session_id", sessionID, "error", err)
		return nil, &ConfigurationError{Msg: "Failed to fetch configurations", Err: err}
	}
	return configs, nil
}

func (cs *configurationService) GetChainConfigurations(ctx context.Context, sessionID, chainID uuid.UUID) ([]*types.Configuration, error) {
	if _, err := cs.validateSessionChain(ctx, sessionID, chainID); err != nil {
		return nil, err
	}
	configs, err := cs.configRepo.GetByChainID(ctx, nil, chainID)
	if err != nil {
		cs.log.Error("GetChainConfigurations failed", "chain_id", chainID, "error", err)
		return nil, &ConfigurationError{Msg: "Failed to fetch configurations", Err: err}
	}
	return configs, nil
}

func (cs *configurationService) GetConfigurationByID(ctx context.Context, sessionID, configID uuid.UUID) (*types.Configuration, error) {
	return cs.validateSessionConfiguration(ctx, sessionID, configID)
}

// GetChainSchema proxies the schema endpoint of the chain service. A
// missing session or chain surfaces as the NotFound kind; a downstream
// failure of the chain service is a ConfigurationError.
func (cs *configurationService) GetChainSchema(ctx context.Context, sessionID, chainID uuid.UUID) (map[string]interface{}, error) {
	chain, err := cs.validateSessionChain(ctx, sessionID, chainID)
	if err != nil {
		return nil, err
	}
	schema, err := cs.langserve.GetConfigSchema(ctx, chain.FileName)
	if err != nil {
		cs.log.Error("GetChainSchema failed", "chain_id", chainID, "error", err)
		return nil, &ConfigurationError{Msg: "Failed to fetch chain config schema", Err: err}
	}
	return schema, nil
}

func (cs *configurationService) UpdateConfiguration(ctx context.Context, sessionID, configID uuid.UUID, data ConfigurationUpdate) (*types.Configuration, error) {
	config, err := cs.validateSessionConfiguration(ctx, sessionID, configID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if data.ConfigValues != nil {
		raw, err := json.Marshal(data.ConfigValues)
		if err != nil {
			return nil, &ConfigurationError{Msg: "Failed to encode configuration values", Err: err}
		}
		fields["config_values"] = datatypes.JSON(raw)
	}

	updated, err := cs.configRepo.Update(ctx, nil, config, fields)
	if err != nil {
		cs.log.Error("UpdateConfiguration failed", "configuration_id", configID, "error", err)
		return nil, &ConfigurationError{Msg: "Failed to update configuration", Err: err}
	}
	return updated, nil
}

func (cs *configurationService) DeleteConfiguration(ctx context.Context, sessionID, configID uuid.UUID) (*types.Configuration, error) {
	config, err := cs.validateSessionConfiguration(ctx, sessionID, configID)
	if err != nil {
		return nil, err
	}
	deleted, err := cs.configRepo.Delete(ctx, nil, config)
	if err != nil {
		cs.log.Error("DeleteConfiguration failed", "configuration_id", configID, "error", err)
		return nil, &ConfigurationError{Msg: "Failed to delete configuration", Err: err}
	}
	cs.log.Warn("Deleted configuration", "configuration_id", configID, "session_id", sessionID)
	return deleted, nil
}
