package entity

import (
	"time"
)

// Session is one prompt→translation interaction plus its audio artifacts,
// owned by a single user. Audio fields hold raw bytes; base64 belongs to the
// storage and transport boundaries.
type Session struct {
	Id          string
	UserId      string
	Prompt      string
	Language    string
	Summary     string
	Translation string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	TTSAudio    []byte
	Recording   []byte
}
