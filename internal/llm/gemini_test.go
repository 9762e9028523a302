package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/internal/model"
)

func newCaptureServer(t *testing.T, reply string) (*httptest.Server, *generateRequest) {
	t.Helper()
	captured := &generateRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"role": "model", "parts": []map[string]any{{"text": reply}}}},
			},
		})
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func TestGenerate_SendsInstructionAndMappedRoles(t *testing.T) {
	server, captured := newCaptureServer(t, "  a reply  ")
	client := NewClientWithBaseURL("test-key", "gemini-2.5-flash", server.URL)

	history := []model.Message{
		{ID: "m1", Role: "user", Content: "hello"},
		{ID: "m2", Role: "assistant", Content: "hi there"},
		{ID: "m3", Role: "user", Content: ""},
		{ID: "m4", Role: "user", Content: "continue"},
	}
	reply, err := client.Generate(context.Background(), history)
	require.NoError(t, err)
	assert.Equal(t, "a reply", reply)

	// Leading instruction plus the three non-empty turns.
	require.Len(t, captured.Contents, 4)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, systemInstruction, captured.Contents[0].Parts[0].Text)
	assert.Equal(t, "user", captured.Contents[1].Role)
	assert.Equal(t, "model", captured.Contents[2].Role)
	assert.Equal(t, "hi there", captured.Contents[2].Parts[0].Text)
	assert.Equal(t, "user", captured.Contents[3].Role)
	assert.Equal(t, "continue", captured.Contents[3].Parts[0].Text)

	assert.Equal(t, 0.7, captured.GenerationConfig.Temperature)
	assert.Equal(t, 0.9, captured.GenerationConfig.TopP)
}

func TestGenerate_BoundsContextWindow(t *testing.T) {
	server, captured := newCaptureServer(t, "ok")
	client := NewClientWithBaseURL("test-key", "gemini-2.5-flash", server.URL)

	history := make([]model.Message, 0, 30)
	for i := 0; i < 30; i++ {
		history = append(history, model.Message{
			ID:      fmt.Sprintf("m%d", i),
			Role:    "user",
			Content: strconv.Itoa(i),
		})
	}
	_, err := client.Generate(context.Background(), history)
	require.NoError(t, err)

	// Instruction plus the most recent 20 messages.
	require.Len(t, captured.Contents, maxHistoryMessages+1)
	assert.Equal(t, "10", captured.Contents[1].Parts[0].Text)
	assert.Equal(t, "29", captured.Contents[maxHistoryMessages].Parts[0].Text)
}

func TestGenerate_SurfacesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"},
		})
	}))
	t.Cleanup(server.Close)

	client := NewClientWithBaseURL("bad-key", "gemini-2.5-flash", server.URL)
	_, err := client.Generate(context.Background(), []model.Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGenerate_NonOKStatusWithoutErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("{}"))
	}))
	t.Cleanup(server.Close)

	client := NewClientWithBaseURL("test-key", "gemini-2.5-flash", server.URL)
	_, err := client.Generate(context.Background(), []model.Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestGenerate_JoinsCandidateParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "part one"}, {"text": " part two"}}}},
				{"content": map[string]any{"parts": []map[string]any{{"text": "ignored second candidate"}}}},
			},
		})
	}))
	t.Cleanup(server.Close)

	client := NewClientWithBaseURL("test-key", "gemini-2.5-flash", server.URL)
	reply, err := client.Generate(context.Background(), []model.Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "part one part two", reply)
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	t.Cleanup(server.Close)

	client := NewClientWithBaseURL("test-key", "gemini-2.5-flash", server.URL)
	reply, err := client.Generate(context.Background(), []model.Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Empty(t, reply)
}
