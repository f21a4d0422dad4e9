package memory

import (
	"context"
	"time"

	"ai-langcoach-be/internal/entity"
	"ai-langcoach-be/internal/pkg/apperror"
	"ai-langcoach-be/internal/repository/contract"
	"ai-langcoach-be/pkg/audiocodec"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps sessions in process memory. Used for local
// development without Firestore credentials and as the storage double in
// service tests.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() contract.SessionRepository {
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

func (r *SessionRepository) CreateSession(_ context.Context, session *entity.Session) error {
	r.cache.Set(session.Id, cloneSession(session), cache.NoExpiration)
	return nil
}

func (r *SessionRepository) GetUserSessions(_ context.Context, userId string) ([]*entity.Session, error) {
	sessions := make([]*entity.Session, 0)
	for _, item := range r.cache.Items() {
		session, ok := item.Object.(*entity.Session)
		if !ok || session.UserId != userId {
			continue
		}
		sessions = append(sessions, cloneSession(session))
	}
	return sessions, nil
}

func (r *SessionRepository) SaveRecording(_ context.Context, sessionId, userId, audioData string) error {
	recording, err := audiocodec.Decode(audiocodec.StripDataURL(audioData))
	if err != nil {
		return err
	}

	stored, found := r.cache.Get(sessionId)
	if !found {
		return apperror.New(apperror.KindNotFound, "session not found")
	}
	session := stored.(*entity.Session)
	if session.UserId != userId {
		return apperror.New(apperror.KindNotFound, "session not found")
	}

	updated := cloneSession(session)
	updated.Recording = recording
	updated.UpdatedAt = time.Now()
	r.cache.Set(sessionId, updated, cache.NoExpiration)

	return nil
}

// cloneSession copies a session so cached state never aliases caller-held
// slices.
func cloneSession(s *entity.Session) *entity.Session {
	clone := *s
	if s.TTSAudio != nil {
		clone.TTSAudio = append([]byte(nil), s.TTSAudio...)
	}
	if s.Recording != nil {
		clone.Recording = append([]byte(nil), s.Recording...)
	}
	return &clone
}
