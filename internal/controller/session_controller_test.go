package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-langcoach-be/internal/pkg/serverutils"
	"ai-langcoach-be/internal/repository/memory"
	"ai-langcoach-be/internal/service"
	"ai-langcoach-be/pkg/openai"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranslator struct {
	completeCalls   int
	synthesizeCalls int
}

func (s *stubTranslator) Complete(_ context.Context, _, _ string) (*openai.CompletionResult, error) {
	s.completeCalls++
	return &openai.CompletionResult{Summary: "a greeting", Translation: "Bonjour"}, nil
}

func (s *stubTranslator) Synthesize(_ context.Context, _ string) ([]byte, error) {
	s.synthesizeCalls++
	return []byte{0x10, 0x20, 0x30}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestApp(t *testing.T) (*fiber.App, *stubTranslator) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	translator := &stubTranslator{}
	svc := service.NewSessionService(memory.NewSessionRepository(), 7, nopLogger{})

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewSessionController(svc, translator).RegisterRoutes(api, serverutils.JwtMiddleware)

	return app, translator
}

func bearerToken(t *testing.T, userId string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var payload map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return res, payload
}

func TestSubmitRequiresToken(t *testing.T) {
	app, translator := newTestApp(t)

	res, _ := doJSON(t, app, "POST", "/api/submit", "", fiber.Map{
		"text": "Hello", "language": "french",
	})

	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Zero(t, translator.completeCalls)
}

func TestSubmitRejectsUnsupportedLanguage(t *testing.T) {
	app, translator := newTestApp(t)

	res, _ := doJSON(t, app, "POST", "/api/submit", bearerToken(t, "u1"), fiber.Map{
		"text": "Hallo", "language": "german",
	})

	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	// Rejected before any provider call.
	assert.Zero(t, translator.completeCalls)
	assert.Zero(t, translator.synthesizeCalls)
}

func TestSubmitAndFetchSessions(t *testing.T) {
	app, translator := newTestApp(t)
	token := bearerToken(t, "u1")

	res, payload := doJSON(t, app, "POST", "/api/submit", token, fiber.Map{
		"text": "Hello", "language": "french",
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, 1, translator.completeCalls)
	assert.Equal(t, 1, translator.synthesizeCalls)

	data := payload["data"].(map[string]interface{})
	sessionId := data["sessionId"].(string)
	require.NotEmpty(t, sessionId)
	assert.Equal(t, "a greeting", data["summary"])
	assert.Equal(t, "Bonjour", data["translation"])
	assert.Equal(t, "ECAw", data["audio"]) // base64 of 0x10 0x20 0x30

	res, payload = doJSON(t, app, "GET", "/api/sessions", token, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	sessions := payload["data"].([]interface{})
	require.Len(t, sessions, 1)
	session := sessions[0].(map[string]interface{})
	assert.Equal(t, sessionId, session["id"])
	assert.Equal(t, "ECAw", session["tts_audio"])
	_, hasRecording := session["recording"]
	assert.True(t, hasRecording, "recording key must be present")
	assert.Nil(t, session["recording"])
}

func TestSaveRecordingFlow(t *testing.T) {
	app, _ := newTestApp(t)
	token := bearerToken(t, "u1")

	_, payload := doJSON(t, app, "POST", "/api/submit", token, fiber.Map{
		"text": "Hello", "language": "italian",
	})
	sessionId := payload["data"].(map[string]interface{})["sessionId"].(string)

	res, _ := doJSON(t, app, "POST", "/api/saveRecording/session/"+sessionId, token, fiber.Map{
		"audioData": "data:audio/webm;base64,AAAA",
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	// Another user's attempt reads as not-found.
	res, _ = doJSON(t, app, "POST", "/api/saveRecording/session/"+sessionId, bearerToken(t, "u2"), fiber.Map{
		"audioData": "AAAA",
	})
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	_, payload = doJSON(t, app, "GET", "/api/sessions", token, nil)
	session := payload["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "AAAA", session["recording"])
}
