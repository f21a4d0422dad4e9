package mapper

import (
	"ai-langcoach-be/internal/dto"
	"ai-langcoach-be/internal/entity"
	"ai-langcoach-be/internal/model"
	"ai-langcoach-be/pkg/audiocodec"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

// Transport mapping

// SessionToResponse produces the client-facing form: base64 audio, epoch
// timestamps. Both audio keys are always present; nil means null on the
// wire.
func (m *SessionMapper) SessionToResponse(s *entity.Session) *dto.SessionResponse {
	if s == nil {
		return nil
	}

	res := &dto.SessionResponse{
		Id:          s.Id,
		UserId:      s.UserId,
		Prompt:      s.Prompt,
		Language:    s.Language,
		Summary:     s.Summary,
		Translation: s.Translation,
		CreatedAt:   s.CreatedAt.Unix(),
		UpdatedAt:   s.UpdatedAt.Unix(),
	}

	if len(s.TTSAudio) > 0 {
		encoded := audiocodec.Encode(s.TTSAudio)
		res.TTSAudio = &encoded
	}
	if len(s.Recording) > 0 {
		encoded := audiocodec.Encode(s.Recording)
		res.Recording = &encoded
	}

	return res
}

// Relational model mapping

func (m *SessionMapper) SessionToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	return &model.Session{
		Id:          s.Id,
		UserId:      s.UserId,
		Prompt:      s.Prompt,
		Language:    s.Language,
		Summary:     s.Summary,
		Translation: s.Translation,
		TTSAudio:    s.TTSAudio,
		Recording:   s.Recording,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (m *SessionMapper) SessionToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	return &entity.Session{
		Id:          s.Id,
		UserId:      s.UserId,
		Prompt:      s.Prompt,
		Language:    s.Language,
		Summary:     s.Summary,
		Translation: s.Translation,
		TTSAudio:    s.TTSAudio,
		Recording:   s.Recording,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
