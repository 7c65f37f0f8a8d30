package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// setupAnalyzerTest starts a mock OpenAI server and returns an analyzer pointed
// at it plus a function to set the mock response and read the last request.
func setupAnalyzerTest(t *testing.T) (*openAIAnalyzer, func(int, interface{}), func() openAIRequest) {
	var mockStatus int
	var mockBody interface{}
	var lastReq openAIRequest

	mockOpenAI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewDecoder(r.Body).Decode(&lastReq)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(mockStatus)
		json.NewEncoder(w).Encode(mockBody)
	}))
	t.Cleanup(mockOpenAI.Close)

	a := &openAIAnalyzer{
		apiKey:   "test-key",
		baseURL:  mockOpenAI.URL,
		model:    "gpt-4o-mini",
		fallback: mockAnalyzer{},
	}
	setMock := func(status int, body interface{}) {
		mockStatus = status
		mockBody = body
	}
	return a, setMock, func() openAIRequest { return lastReq }
}

// openAIChatResponse wraps a content string in the OpenAI chat completions
// response shape (choices[0].message.content).
func openAIChatResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message": map[string]interface{}{
					"content": content,
				},
			},
		},
	}
}

var sampleInputs = planInputs{Age: 30, Weight: 70, Height: 175, SleepHours: 7.5, ActivityLevel: "Moderate"}

const sampleMockSummary = "Based on your stats (175cm, 70kg), you need more protein to support your Moderate lifestyle. Your sleep of 7.5h is decent but could be improved."

func TestMockAnalyzer_Summary(t *testing.T) {
	got, err := mockAnalyzer{}.Summarize(context.Background(), sampleInputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != sampleMockSummary {
		t.Errorf("summary = %q, want %q", got, sampleMockSummary)
	}
}

func TestOpenAIAnalyzer_Success(t *testing.T) {
	a, setMock, lastReq := setupAnalyzerTest(t)
	setMock(http.StatusOK, openAIChatResponse(`{"summary":"Eat more fish."}`))

	got, err := a.Summarize(context.Background(), sampleInputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Eat more fish." {
		t.Errorf("summary = %q, want %q", got, "Eat more fish.")
	}

	req := lastReq()
	if req.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", req.Model)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", req.Messages)
	}
	if !strings.Contains(req.Messages[1].Content, `"activity_level":"Moderate"`) {
		t.Errorf("user message missing inputs: %s", req.Messages[1].Content)
	}
}

// TestOpenAIAnalyzer_Fallback verifies every failure mode degrades to the mock summary.
func TestOpenAIAnalyzer_Fallback(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   interface{}
	}{
		{"server error", http.StatusInternalServerError, map[string]string{"error": "server error"}},
		{"malformed content", http.StatusOK, openAIChatResponse(`not valid json at all`)},
		{"empty summary", http.StatusOK, openAIChatResponse(`{"summary":"  "}`)},
		{"no choices", http.StatusOK, map[string]interface{}{"choices": []interface{}{}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, setMock, _ := setupAnalyzerTest(t)
			setMock(tc.status, tc.body)

			got, err := a.Summarize(context.Background(), sampleInputs)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != sampleMockSummary {
				t.Errorf("summary = %q, want mock summary", got)
			}
		})
	}
}

func TestCallOpenAI_MissingKey(t *testing.T) {
	_, err := callOpenAI(context.Background(), nil, "http://127.0.0.1:0", "", "gpt-4o-mini")
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}
