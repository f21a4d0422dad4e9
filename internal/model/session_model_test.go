package model

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

// The bootstrap and cmd/migrate both AutoMigrate this model onto a fresh
// database; the derived schema is what that migration creates.
func TestSessionSchema(t *testing.T) {
	s, err := schema.Parse(&Session{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("schema.Parse() error = %v", err)
	}

	if s.Table != "sessions" {
		t.Errorf("table = %q, want %q", s.Table, "sessions")
	}

	if len(s.PrimaryFields) != 1 || s.PrimaryFields[0].DBName != "id" {
		t.Errorf("primary key fields = %+v, want single id column", s.PrimaryFields)
	}

	wantColumns := []string{
		"id", "user_id", "prompt", "language", "summary", "translation",
		"tts_audio", "recording", "created_at", "updated_at",
	}
	for _, column := range wantColumns {
		if s.LookUpField(column) == nil {
			t.Errorf("column %q missing from derived schema", column)
		}
	}

	userId := s.LookUpField("user_id")
	if userId == nil || !userId.NotNull {
		t.Error("user_id must be not null")
	}
}
