package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// missingNutrients is reported on every generated plan.
var missingNutrients = []string{"Vitamin D", "Iron", "Omega-3"}

// planAnalyzer writes the narrative summary attached to a generated plan.
type planAnalyzer interface {
	Summarize(ctx context.Context, in planInputs) (string, error)
}

/* ─── Mock analyzer ──────────────────────────────────────────────────── */

// mockAnalyzer returns a canned summary built from the inputs. It never fails.
type mockAnalyzer struct{}

func (mockAnalyzer) Summarize(_ context.Context, in planInputs) (string, error) {
	return fmt.Sprintf(
		"Based on your stats (%vcm, %vkg), you need more protein to support your %s lifestyle. Your sleep of %vh is decent but could be improved.",
		in.Height, in.Weight, in.ActivityLevel, in.SleepHours), nil
}

/* ─── OpenAI analyzer ────────────────────────────────────────────────── */

const analysisSystemPrompt = `You are a nutrition coach. Given a user's stats and preferences, write a short assessment (2-3 sentences) of their diet needs.
Return a JSON object with a single key "summary" (string). Return only valid JSON, no explanation.`

// openAIAnalyzer asks the chat completions API for the summary and falls back
// to another analyzer when the call or its response is unusable.
type openAIAnalyzer struct {
	apiKey   string
	baseURL  string
	model    string
	fallback planAnalyzer
}

func (a *openAIAnalyzer) Summarize(ctx context.Context, in planInputs) (string, error) {
	summary, err := a.summarize(ctx, in)
	if err != nil {
		log.Printf("[analyzer] OpenAI error, using fallback: %v", err)
		analyzerFallbacks.Inc()
		return a.fallback.Summarize(ctx, in)
	}
	return summary, nil
}

func (a *openAIAnalyzer) summarize(ctx context.Context, in planInputs) (string, error) {
	userContent, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("marshal inputs: %w", err)
	}
	messages := []openAIMessage{
		{Role: "system", Content: analysisSystemPrompt},
		{Role: "user", Content: string(userContent)},
	}

	content, err := callOpenAI(ctx, messages, a.baseURL, a.apiKey, a.model)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return "", fmt.Errorf("parse summary: %w", err)
	}
	if strings.TrimSpace(parsed.Summary) == "" {
		return "", fmt.Errorf("empty summary")
	}
	return parsed.Summary, nil
}

/* ─── OpenAI HTTP client ─────────────────────────────────────────────── */

// openAIMessage is a single message in the OpenAI chat completions request.
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIRequest is the request body for the OpenAI chat completions API.
type openAIRequest struct {
	Model          string                 `json:"model"`
	Messages       []openAIMessage        `json:"messages"`
	Temperature    float64                `json:"temperature"`
	ResponseFormat map[string]interface{} `json:"response_format"`
}

// callOpenAI sends a chat completions request and returns the raw content string
// from the first choice. Uses raw net/http to avoid pulling in the OpenAI SDK.
func callOpenAI(ctx context.Context, messages []openAIMessage, baseURL, apiKey, model string) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	reqBody := openAIRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.3,
		ResponseFormat: map[string]interface{}{
			"type": "json_object",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", strings.TrimRight(baseURL, "/")+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return result.Choices[0].Message.Content, nil
}
