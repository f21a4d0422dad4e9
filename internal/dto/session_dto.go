package dto

type SubmitRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language" validate:"required,oneof=french italian"`
}

type SubmitResponse struct {
	SessionId   string `json:"sessionId"`
	Summary     string `json:"summary"`
	Translation string `json:"translation"`
	Audio       string `json:"audio"`
}

type SaveRecordingRequest struct {
	AudioData string `json:"audioData" validate:"required"`
}

// SessionResponse is the transport form of a session. Audio fields are
// base64 pointers without omitempty: clients depend on the keys being
// present, so an absent payload serializes as an explicit null.
type SessionResponse struct {
	Id          string  `json:"id"`
	UserId      string  `json:"user_id"`
	Prompt      string  `json:"prompt"`
	Language    string  `json:"language"`
	Summary     string  `json:"summary"`
	Translation string  `json:"translation"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
	TTSAudio    *string `json:"tts_audio"`
	Recording   *string `json:"recording"`
}
