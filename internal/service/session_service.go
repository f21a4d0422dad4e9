package service

import (
	"context"
	"sort"
	"time"

	"ai-langcoach-be/internal/constant"
	"ai-langcoach-be/internal/dto"
	"ai-langcoach-be/internal/entity"
	"ai-langcoach-be/internal/mapper"
	"ai-langcoach-be/internal/pkg/apperror"
	"ai-langcoach-be/internal/pkg/logger"
	"ai-langcoach-be/internal/repository/contract"
	"ai-langcoach-be/pkg/audiocodec"
	"ai-langcoach-be/pkg/openai"

	"github.com/google/uuid"
)

type ISessionService interface {
	Submit(ctx context.Context, userId, prompt, language string, completion *openai.CompletionResult, audio []byte) (*dto.SubmitResponse, error)
	ListSessions(ctx context.Context, userId string) ([]*dto.SessionResponse, error)
	AttachRecording(ctx context.Context, sessionId, userId, audioData string) error
}

type sessionService struct {
	sessionRepo   contract.SessionRepository
	mapper        *mapper.SessionMapper
	logger        logger.ILogger
	retentionDays int
}

func NewSessionService(sessionRepo contract.SessionRepository, retentionDays int, logger logger.ILogger) ISessionService {
	return &sessionService{
		sessionRepo:   sessionRepo,
		mapper:        mapper.NewSessionMapper(),
		logger:        logger,
		retentionDays: retentionDays,
	}
}

// Submit assembles a session from already-obtained AI outputs and persists
// it. Provider calls happen at the route layer; this only sees their result.
func (s *sessionService) Submit(ctx context.Context, userId, prompt, language string, completion *openai.CompletionResult, audio []byte) (*dto.SubmitResponse, error) {
	if prompt == "" {
		return nil, apperror.New(apperror.KindValidation, "no prompt provided")
	}
	if _, ok := constant.LanguageNames[language]; !ok {
		return nil, apperror.New(apperror.KindValidation, "invalid language. must be french or italian")
	}
	if completion == nil || completion.Summary == "" || completion.Translation == "" {
		return nil, apperror.New(apperror.KindValidation, "missing completion result")
	}
	if len(audio) == 0 {
		return nil, apperror.New(apperror.KindValidation, "missing audio data")
	}

	now := time.Now()
	session := &entity.Session{
		Id:          uuid.New().String(),
		UserId:      userId,
		Prompt:      prompt,
		Language:    language,
		Summary:     completion.Summary,
		Translation: completion.Translation,
		CreatedAt:   now,
		UpdatedAt:   now,
		TTSAudio:    audio,
	}

	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		s.logger.Error("session_service", "failed to persist session", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.logger.Info("session_service", "session created", map[string]interface{}{
		"session_id": session.Id,
		"language":   session.Language,
		"audio_size": len(audio),
	})

	return &dto.SubmitResponse{
		SessionId:   session.Id,
		Summary:     session.Summary,
		Translation: session.Translation,
		Audio:       audiocodec.Encode(session.TTSAudio),
	}, nil
}

// ListSessions returns the user's sessions newest first, limited to the
// configured retention window. The window is service policy and applies the
// same way over every backend.
func (s *sessionService) ListSessions(ctx context.Context, userId string) ([]*dto.SessionResponse, error) {
	sessions, err := s.sessionRepo.GetUserSessions(ctx, userId)
	if err != nil {
		return nil, err
	}

	if s.retentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
		kept := sessions[:0]
		for _, session := range sessions {
			if session.CreatedAt.After(cutoff) {
				kept = append(kept, session)
			}
		}
		sessions = kept
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	result := make([]*dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		result[i] = s.mapper.SessionToResponse(session)
	}
	return result, nil
}

func (s *sessionService) AttachRecording(ctx context.Context, sessionId, userId, audioData string) error {
	if sessionId == "" || audioData == "" {
		return apperror.New(apperror.KindValidation, "missing sessionId or audioData")
	}

	if err := s.sessionRepo.SaveRecording(ctx, sessionId, userId, audioData); err != nil {
		return err
	}

	s.logger.Info("session_service", "recording attached", map[string]interface{}{
		"session_id": sessionId,
	})
	return nil
}
