package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ragulator-backend/internal/clients/chaindir"
	"github.com/yungbote/ragulator-backend/internal/clients/langserve"
	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/repos"
	"github.com/yungbote/ragulator-backend/internal/types"
)

type ChainService interface {
	GetAvailableChains(ctx context.Context) ([]string, error)
	SelectChains(ctx context.Context, sessionID uuid.UUID, fileNames []string) ([]*types.Chain, error)
	GetSessionChains(ctx context.Context, sessionID uuid.UUID) ([]*types.Chain, error)
	GetChainByID(ctx context.Context, sessionID, chainID uuid.UUID) (*types.Chain, error)
	DeleteSessionChain(ctx context.Context, sessionID, chainID uuid.UUID) (*types.Chain, error)
	DeleteSessionChains(ctx context.Context, sessionID uuid.UUID) error
	InvokeChainBatch(ctx context.Context, sessionID, chainID, configurationID uuid.UUID) ([]*types.Answer, error)
}

type chainService struct {
	db           *gorm.DB
	log          *logger.Logger
	chainRepo    repos.ChainRepo
	sessionRepo  repos.SessionRepo
	questionRepo repos.QuestionRepo
	configRepo   repos.ConfigurationRepo
	answerRepo   repos.AnswerRepo
	directory    chaindir.Directory
	langserve    langserve.Client
}

func NewChainService(
	db *gorm.DB,
	baseLog *logger.Logger,
	chainRepo repos.ChainRepo,
	sessionRepo repos.SessionRepo,
	questionRepo repos.QuestionRepo,
	configRepo repos.ConfigurationRepo,
	answerRepo repos.AnswerRepo,
	directory chaindir.Directory,
	langserveClient langserve.Client,
) ChainService {
	serviceLog := baseLog.With("service", "ChainService")
	return &chainService{
		db:           db,
		log:          serviceLog,
		chainRepo:    chainRepo,
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		configRepo:   configRepo,
		answerRepo:   answerRepo,
		directory:    directory,
		langserve:    langserveClient,
	}
}

func (cs *chainService) validateSession(ctx context.Context, sessionID uuid.UUID) error {
	exists, err := cs.sessionRepo.Exists(ctx, nil, sessionID)
	if err != nil {
		cs.log.Error("Session validation failed", "session_id", sessionID, "error", err)
		return &ChainError{Msg: "Failed to validate session", Err: err}
	}
	if !exists {
		return &SessionNotFoundError{SessionID: sessionID}
	}
	return nil
}

func (cs *chainService) validateSessionChain(ctx context.Context, sessionID, chainID uuid.UUID) (*types.Chain, error) {
	if err := cs.validateSession(ctx, sessionID); err != nil {
		return nil, err
	}
	chain, err := cs.chainRepo.GetByID(ctx, nil, chainID)
	if err != nil {
		cs.log.Error("Chain validation failed", "chain_id", chainID, "error", err)
		return nil, &ChainError{Msg: "Failed to validate chain", Err: err}
	}
	if chain == nil {
		return nil, &ChainNotFoundError{ChainID: chainID}
	}
	if chain.SessionID != sessionID {
		return nil, &ChainNotFoundError{ChainID: chainID, SessionID: sessionID}
	}
	return chain, nil
}

// GetAvailableChains re-scans the chains directory on every call; the
// listing is never cached so new files show up immediately.
func (cs *chainService) GetAvailableChains(ctx context.Context) ([]string, error) {
	fileNames, err := cs.directory.List()
	if err != nil {
		return nil, &ChainError{Msg: "Failed to scan chains directory", Err: err}
	}
	return fileNames, nil
}

// SelectChains attaches chain files to a session. Already-attached file
// names are skipped, not rejected; only the newly created chains are
// returned, so a fully duplicate selection succeeds with an empty list.
func (cs *chainService) SelectChains(ctx context.Context, sessionID uuid.UUID, fileNames []string) ([]*types.Chain, error) {
	if err := cs.validateSession(ctx, sessionID); err != nil {
		return nil, err
	}

	available, err := cs.GetAvailableChains(ctx)
	if err != nil {
		return nil, err
	}
	availableSet := make(map[string]bool, len(available))
	for _, f := range available {
		availableSet[f] = true
	}
	var invalid []string
	for _, f := range fileNames {
		if !availableSet[f] {
			invalid = append(invalid, f)
		}
	}
	if len(invalid) > 0 {
		return nil, &ChainError{Msg: fmt.Sprintf("Chain files not found in chains directory: %s", strings.Join(invalid, ", "))}
	}

	existing, err := cs.chainRepo.GetFileNamesBySessionID(ctx, nil, sessionID)
	if err != nil {
		cs.log.Error("Failed to fetch existing chains", "session_id", sessionID, "error", err)
		return nil, &ChainError{Msg: "Failed to fetch existing chains", Err: err}
	}
	existingSet := make(map[string]bool, len(existing))
	for _, f := range existing {
		existingSet[f] = true
	}

	var chains []*types.Chain
	for _, f := range fileNames {
		if existingSet[f] {
			continue
		}
		existingSet[f] = true // collapse repeats inside the same selection
		chains = append(chains, &types.Chain{
			ID:        uuid.New(),
			SessionID: sessionID,
			FileName:  f,
		})
	}

	if len(chains) == 0 {
		cs.log.Info("No new chain files to add - all already exist", "session_id", sessionID)
		return []*types.Chain{}, nil
	}

	created, err := cs.chainRepo.CreateBulk(ctx, nil, chains)
	if err != nil {
		cs.log.Error("SelectChains failed", "session_id", sessionID, "error", err)
		return nil, &ChainError{Msg: "Failed to select chains", Err: err}
	}

	cs.log.Info("Added new chains to session",
		"session_id", sessionID,
		"added", len(created),
		"skipped", len(fileNames)-len(created))
	return created, nil
}

func (cs *chainService) GetSessionChains(ctx context.Context, sessionID uuid.UUID) ([]*types.Chain, error) {
	if err := cs.validateSession(ctx, sessionID); err != nil {
		return nil, err
	}
	chains, err := cs.chainRepo.GetBySessionID(ctx, nil, sessionID)
	if err != nil {
		cs.log.Error("GetSessionChains failed", "session_id", sessionID, "error", err)
		return nil, &ChainError{Msg: "Failed to fetch chains", Err: err}
	}
	return chains, nil
}

func (cs *chainService) GetChainByID(ctx context.Context, sessionID, chainID uuid.UUID) (*types.Chain, error) {
	return cs.validateSessionChain(ctx, sessionID, chainID)
}

func (cs *chainService) DeleteSessionChain(ctx context.Context, sessionID, chainID uuid.UUID) (*types.Chain, error) {
	chain, err := cs.validateSessionChain(ctx, sessionID, chainID)
	if err != nil {
		return nil, err
	}
	deleted, err := cs.chainRepo.Delete(ctx, nil, chain)
	if err != nil {
		cs.log.Error("DeleteSessionChain failed", "chain_id", chainID, "error", err)
		return nil, &ChainError{Msg: "Failed to delete chain", Err: err}
	}
	return deleted, nil
}

func (cs *chainService) DeleteSessionChains(ctx context.Context, sessionID uuid.UUID) error {
	if err := cs.validateSession(ctx, sessionID); err != nil {
		return err
	}
	chains, err := cs.chainRepo.GetBySessionID(ctx, nil, sessionID)
	if err != nil {
		return &ChainError{Msg: "Failed to fetch chains", Err: err}
	}
	if _, err := cs.chainRepo.DeleteBulk(ctx, nil, chains); err != nil {
		cs.log.Error("DeleteSessionChains failed", "session_id", sessionID, "error", err)
		return &ChainError{Msg: "Failed to delete session chains", Err: err}
	}
	cs.log.Info("Deleted all chains for session", "session_id", sessionID)
	return nil
}

// InvokeChainBatch submits every question of the session to the chain in
// one batched call and persists one answer per question. The network call
// and the insert are separate steps: if the insert fails the generated
// text is lost and the caller has to re-invoke.
func (cs *chainService) InvokeChainBatch(ctx context.Context, sessionID, chainID, configurationID uuid.UUID) ([]*types.Answer, error) {
	chain, err := cs.validateSessionChain(ctx, sessionID, chainID)
	if err != nil {
		return nil, err
	}

	questions, err := cs.questionRepo.GetBySessionID(ctx, nil, sessionID)
	if err != nil {
		cs.log.Error("Failed to load session questions", "session_id", sessionID, "error", err)
		return nil, &ChainError{Msg: "Failed to fetch session questions", Err: err}
	}
	if len(questions) == 0 {
		cs.log.Info("Session has no questions, nothing to invoke", "session_id", sessionID)
		return []*types.Answer{}, nil
	}

	config, err := cs.configRepo.GetByID(ctx, nil, configurationID)
	if err != nil {
		cs.log.Error("Failed to load configuration", "configuration_id", configurationID, "error", err)
		return nil, &ChainError{Msg: "Failed to fetch configuration", Err: err}
	}
	if config == nil {
		return nil, &ConfigurationNotFoundError{ConfigurationID: configurationID}
	}

	var configurable map[string]interface{}
	if len(config.ConfigValues) > 0 {
		if err := json.Unmarshal(config.ConfigValues, &configurable); err != nil {
			return nil, &ChainError{Msg: "Failed to decode configuration values", Err: err}
		}
	}

	inputs := make([]string, 0, len(questions))
	for _, q := range questions {
		inputs = append(inputs, q.QuestionText)
	}

	outputs, err := cs.langserve.BatchInvoke(ctx, chain.FileName, inputs, configurable)
	if err != nil {
		cs.log.Error("Chain batch invocation failed", "chain_id", chainID, "error", err)
		return nil, &ChainError{Msg: "Failed to invoke chain", Err: err}
	}

	answers := make([]*types.Answer, 0, len(questions))
	for i, q := range questions {
		answers = append(answers, &types.Answer{
			ID:              uuid.New(),
			ChainID:         chainID,
			QuestionID:      q.ID,
			ConfigurationID: configurationID,
			GeneratedAnswer: outputs[i],
		})
	}

	created, err := cs.answerRepo.CreateBulk(ctx, nil, answers)
	if err != nil {
		cs.log.Error("Failed to persist generated answers", "chain_id", chainID, "error", err)
		return nil, &ChainError{Msg: "Failed to persist generated answers", Err: err}
	}

	cs.log.Info("Generated answers for session",
		"session_id", sessionID,
		"chain_id", chainID,
		"configuration_id", configurationID,
		"count", len(created))
	return created, nil
}
