package implementation

import (
	"context"
	"errors"
	"time"

	"ai-langcoach-be/internal/entity"
	"ai-langcoach-be/internal/mapper"
	"ai-langcoach-be/internal/model"
	"ai-langcoach-be/internal/pkg/apperror"
	"ai-langcoach-be/internal/repository/contract"
	"ai-langcoach-be/pkg/audiocodec"

	"gorm.io/gorm"
)

// SessionRepositoryImpl is the relational comparison backend: whole audio
// payloads in bytea columns, no chunking.
type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) CreateSession(ctx context.Context, session *entity.Session) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Wrap(apperror.KindStore, "failed to insert session", err)
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *SessionRepositoryImpl) GetUserSessions(ctx context.Context, userId string) ([]*entity.Session, error) {
	var models []*model.Session
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).Find(&models).Error; err != nil {
		return nil, apperror.Wrap(apperror.KindStore, "failed to query sessions", err)
	}

	sessions := make([]*entity.Session, len(models))
	for i, m := range models {
		sessions[i] = r.mapper.SessionToEntity(m)
	}
	return sessions, nil
}

func (r *SessionRepositoryImpl) SaveRecording(ctx context.Context, sessionId, userId, audioData string) error {
	recording, err := audiocodec.Decode(audiocodec.StripDataURL(audioData))
	if err != nil {
		return err
	}

	var m model.Session
	err = r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionId, userId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.KindNotFound, "session not found")
		}
		return apperror.Wrap(apperror.KindStore, "failed to load session", err)
	}

	err = r.db.WithContext(ctx).
		Model(&m).
		Updates(map[string]interface{}{
			"recording":  recording,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return apperror.Wrap(apperror.KindStore, "failed to update session", err)
	}

	return nil
}
