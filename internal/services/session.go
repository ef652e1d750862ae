package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/repos"
	"github.com/yungbote/ragulator-backend/internal/types"
)

type SessionService interface {
	CreateSession(ctx context.Context, data SessionCreate) (*types.Session, error)
	GetSessions(ctx context.Context, skip, limit int) ([]*types.Session, error)
	GetSessionByID(ctx context.Context, sessionID uuid.UUID) (*types.Session, error)
	UpdateSession(ctx context.Context, sessionID uuid.UUID, data SessionUpdate) (*types.Session, error)
	DeleteSession(ctx context.Context, sessionID uuid.UUID) (*types.Session, error)
}

type sessionService struct {
	db          *gorm.DB
	log         *logger.Logger
	sessionRepo repos.SessionRepo
}

func NewSessionService(db *gorm.DB, baseLog *logger.Logger, sessionRepo repos.SessionRepo) SessionService {
	serviceLog := baseLog.With("service", "SessionService")
	return &sessionService{
		db:          db,
		log:         serviceLog,
		sessionRepo: sessionRepo,
	}
}

func (ss *sessionService) CreateSession(ctx context.Context, data SessionCreate) (*types.Session, error) {
	session := &types.Session{
		ID:          uuid.New(),
		Name:        data.Name,
		Description: data.Description,
	}
	created, err := ss.sessionRepo.Create(ctx, nil, session)
	if err != nil {
		ss.log.Error("CreateSession failed", "error", err)
		return nil, &SessionError{Msg: "Failed to create session", Err: err}
	}
	ss.log.Info("Created session", "name", created.Name)
	return created, nil
}

// GetSessions lists sessions ordered by last modification, newest first.
func (ss *sessionService) GetSessions(ctx context.Context, skip, limit int) ([]*types.Session, error) {
	sessions, err := ss.sessionRepo.GetMulti(ctx, nil, skip, limit, "last_modified", false)
	if err != nil {
		ss.log.Error("GetSessions failed", "error", err)
		return nil, &SessionError{Msg: "Failed to fetch sessions", Err: err}
	}
	return sessions, nil
}

func (ss *sessionService) GetSessionByID(ctx context.Context, sessionID uuid.UUID) (*types.Session, error) {
	session, err := ss.sessionRepo.GetByID(ctx, nil, sessionID)
	if err != nil {
		ss.log.Error("GetSessionByID failed", "session_id", sessionID, "error", err)
		return nil, &SessionError{Msg: "Failed to fetch session", Err: err}
	}
	if session == nil {
		return nil, &SessionNotFoundError{SessionID: sessionID}
	}
	return session, nil
}

func (ss *sessionService) UpdateSession(ctx context.Context, sessionID uuid.UUID, data SessionUpdate) (*types.Session, error) {
	session, err := ss.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if data.Name != nil {
		fields["name"] = *data.Name
	}
	if data.Description != nil {
		fields["description"] = *data.Description
	}

	updated, err := ss.sessionRepo.Update(ctx, nil, session, fields)
	if err != nil {
		ss.log.Error("UpdateSession failed", "session_id", sessionID, "error", err)
		return nil, &SessionError{Msg: "Failed to update session", Err: err}
	}
	return updated, nil
}

func (ss *sessionService) DeleteSession(ctx context.Context, sessionID uuid.UUID) (*types.Session, error) {
	session, err := ss.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	deleted, err := ss.sessionRepo.Delete(ctx, nil, session)
	if err != nil {
		ss.log.Error("DeleteSession failed", "session_id", sessionID, "error", err)
		return nil, &SessionError{Msg: "Failed to delete session", Err: err}
	}
	return deleted, nil
}
