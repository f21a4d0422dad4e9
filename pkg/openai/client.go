package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	chatCompletionsURL = "https://api.openai.com/v1/chat/completions"
	speechURL          = "https://api.openai.com/v1/audio/speech"
)

// CompletionResult is the structured output the completion model is prompted
// to produce for a practice prompt.
type CompletionResult struct {
	Summary     string `json:"summary"`
	Translation string `json:"translation"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type speechRequest struct {
	Model          string `json:"model"`
	Voice          string `json:"voice"`
	Input          string `json:"input"`
	ResponseFormat string `json:"response_format"`
}

type Client struct {
	apiKey       string
	chatModel    string
	ttsModel     string
	voice        string
	systemPrompt string
	httpClient   *http.Client
}

func NewClient(apiKey, chatModel, ttsModel, voice, systemPrompt string) *Client {
	return &Client{
		apiKey:       apiKey,
		chatModel:    chatModel,
		ttsModel:     ttsModel,
		voice:        voice,
		systemPrompt: systemPrompt,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Complete asks the chat model for a summary and translation of prompt into
// language. The system prompt template carries a {{language}} placeholder.
func (c *Client) Complete(ctx context.Context, language, prompt string) (*CompletionResult, error) {
	system := strings.ReplaceAll(c.systemPrompt, "{{language}}", language)

	payload := chatRequest{
		Model: c.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	}

	resBody, err := c.post(ctx, chatCompletionsURL, payload)
	if err != nil {
		return nil, err
	}

	var chatRes chatResponse
	if err := json.Unmarshal(resBody, &chatRes); err != nil {
		return nil, err
	}
	if len(chatRes.Choices) == 0 {
		return nil, fmt.Errorf("completion returned no choices")
	}

	return parseCompletion(chatRes.Choices[0].Message.Content)
}

// Synthesize returns mp3 bytes for the given text.
func (c *Client) Synthesize(ctx context.Context, input string) ([]byte, error) {
	payload := speechRequest{
		Model:          c.ttsModel,
		Voice:          c.voice,
		Input:          input,
		ResponseFormat: "mp3",
	}

	return c.post(ctx, speechURL, payload)
}

func (c *Client) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	return resBody, nil
}

// parseCompletion extracts the {summary, translation} JSON the model was
// instructed to answer with. Models wrap JSON in code fences often enough
// that stripping them first is required.
func parseCompletion(content string) (*CompletionResult, error) {
	cleaned := strings.ReplaceAll(content, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var result CompletionResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("invalid JSON response from completion: %w", err)
	}
	if result.Summary == "" || result.Translation == "" {
		return nil, fmt.Errorf("completion response missing required fields")
	}

	return &result, nil
}
