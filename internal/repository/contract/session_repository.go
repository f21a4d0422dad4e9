package contract

import (
	"context"

	"ai-langcoach-be/internal/entity"
)

type SessionRepository interface {
	// CreateSession persists a fully-populated session. The session carries
	// its id already; ids are never derived from storage.
	CreateSession(ctx context.Context, session *entity.Session) error

	// GetUserSessions returns every session owned by userId with audio
	// payloads reassembled. Result order is whatever the store yields;
	// recency ordering is service policy.
	GetUserSessions(ctx context.Context, userId string) ([]*entity.Session, error)

	// SaveRecording attaches a user recording to an existing session.
	// audioData may be raw base64 or a data URL. A session that does not
	// exist or belongs to another user reads as not-found.
	SaveRecording(ctx context.Context, sessionId, userId, audioData string) error
}
