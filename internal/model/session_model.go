package model

import (
	"time"
)

// Session is the relational row for the Postgres backend. Audio lives in
// bytea columns whole; only the document store needs chunking. UserId is
// text, not uuid: Firebase UIDs are opaque strings.
type Session struct {
	Id          string    `gorm:"type:uuid;primaryKey"`
	UserId      string    `gorm:"type:text;not null;index"`
	Prompt      string    `gorm:"type:text;not null"`
	Language    string    `gorm:"type:text;not null"`
	Summary     string    `gorm:"type:text;not null"`
	Translation string    `gorm:"type:text;not null"`
	TTSAudio    []byte    `gorm:"type:bytea"`
	Recording   []byte    `gorm:"type:bytea"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}
