package service

import (
	"context"
	"testing"
	"time"

	"ai-langcoach-be/internal/entity"
	"ai-langcoach-be/internal/pkg/apperror"
	"ai-langcoach-be/internal/repository/memory"
	"ai-langcoach-be/pkg/audiocodec"
	"ai-langcoach-be/pkg/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newService() ISessionService {
	return NewSessionService(memory.NewSessionRepository(), 7, nopLogger{})
}

func completion() *openai.CompletionResult {
	return &openai.CompletionResult{Summary: "s", Translation: "t"}
}

func TestSubmitAndListRoundTrip(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	audio := make([]byte, 2_000_000)
	res, err := svc.Submit(ctx, "u1", "Bonjour", "french", completion(), audio)
	require.NoError(t, err)
	require.NotEmpty(t, res.SessionId)
	assert.Equal(t, "s", res.Summary)
	assert.Equal(t, "t", res.Translation)

	// The response audio is the base64 actually stored.
	decoded, err := audiocodec.Decode(res.Audio)
	require.NoError(t, err)
	assert.Equal(t, audio, decoded)

	sessions, err := svc.ListSessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	got := sessions[0]
	assert.Equal(t, res.SessionId, got.Id)
	assert.Equal(t, "Bonjour", got.Prompt)
	require.NotNil(t, got.TTSAudio)
	listed, err := audiocodec.Decode(*got.TTSAudio)
	require.NoError(t, err)
	assert.Equal(t, audio, listed)
	assert.Nil(t, got.Recording)
}

func TestSubmitValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	audio := []byte{0x01}

	tests := []struct {
		name       string
		prompt     string
		language   string
		completion *openai.CompletionResult
		audio      []byte
	}{
		{name: "empty prompt", prompt: "", language: "french", completion: completion(), audio: audio},
		{name: "unsupported language", prompt: "Hallo", language: "german", completion: completion(), audio: audio},
		{name: "missing completion", prompt: "Hi", language: "french", completion: nil, audio: audio},
		{name: "missing audio", prompt: "Hi", language: "french", completion: completion(), audio: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, "u1", tt.prompt, tt.language, tt.completion, tt.audio)
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation), "kind = %s", apperror.KindOf(err))
		})
	}

	// Nothing was persisted by the rejected submissions.
	sessions, err := svc.ListSessions(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestListSessionsRecencyOrder(t *testing.T) {
	repo := memory.NewSessionRepository()
	svc := NewSessionService(repo, 7, nopLogger{})
	ctx := context.Background()

	for i, id := range []string{"older", "newest", "oldest"} {
		offsets := []time.Duration{-2 * time.Hour, 0, -4 * time.Hour}
		created := time.Now().Add(offsets[i])
		require.NoError(t, repo.CreateSession(ctx, &entity.Session{
			Id:        id,
			UserId:    "u1",
			Prompt:    "p",
			CreatedAt: created,
			UpdatedAt: created,
			TTSAudio:  []byte{0x01},
		}))
	}

	sessions, err := svc.ListSessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "newest", sessions[0].Id)
	assert.Equal(t, "older", sessions[1].Id)
	assert.Equal(t, "oldest", sessions[2].Id)
}

func TestListSessionsRetentionWindow(t *testing.T) {
	repo := memory.NewSessionRepository()
	svc := NewSessionService(repo, 7, nopLogger{})
	ctx := context.Background()

	stale := time.Now().AddDate(0, 0, -8)
	require.NoError(t, repo.CreateSession(ctx, &entity.Session{
		Id: "stale", UserId: "u1", Prompt: "p", CreatedAt: stale, UpdatedAt: stale,
	}))
	fresh := time.Now().Add(-time.Hour)
	require.NoError(t, repo.CreateSession(ctx, &entity.Session{
		Id: "fresh", UserId: "u1", Prompt: "p", CreatedAt: fresh, UpdatedAt: fresh,
	}))

	sessions, err := svc.ListSessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "fresh", sessions[0].Id)

	// Retention disabled returns everything.
	all, err := NewSessionService(repo, 0, nopLogger{}).ListSessions(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAttachRecording(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	res, err := svc.Submit(ctx, "u1", "Ciao", "italian", completion(), []byte{0x01})
	require.NoError(t, err)

	require.NoError(t, svc.AttachRecording(ctx, res.SessionId, "u1", "data:audio/webm;base64,AAAA"))

	sessions, err := svc.ListSessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].Recording)

	recording, err := audiocodec.Decode(*sessions[0].Recording)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, recording)
}

func TestAttachRecordingWrongUser(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	res, err := svc.Submit(ctx, "user-a", "Ciao", "italian", completion(), []byte{0x01})
	require.NoError(t, err)

	err = svc.AttachRecording(ctx, res.SessionId, "user-b", "AAAA")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound), "kind = %s", apperror.KindOf(err))
}

func TestAttachRecordingValidation(t *testing.T) {
	svc := newService()

	err := svc.AttachRecording(context.Background(), "", "u1", "")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}
